package usecase

import (
	"context"

	"diagnocare/internal/modules/catalog/domain"
	catalogdto "diagnocare/internal/modules/catalog/dto"
	catalogin "diagnocare/internal/modules/catalog/port/in"
	"diagnocare/internal/modules/catalog/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListSymptoms(ctx context.Context) ([]catalogdto.SymptomOutput, error) {
	items, err := i.svc.All(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) SearchSymptoms(ctx context.Context, label string) ([]catalogdto.SymptomOutput, error) {
	items, err := i.svc.Search(ctx, label)
	if err != nil {
		return nil, err
	}
	return toOutputs(items), nil
}

func (i *Interactor) FilterSymptoms(ctx context.Context, query string) ([]catalogdto.SymptomOutput, error) {
	items, err := i.svc.All(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(domain.Filter(items, query)), nil
}

func toOutputs(items []domain.Symptom) []catalogdto.SymptomOutput {
	out := make([]catalogdto.SymptomOutput, 0, len(items))
	for _, it := range items {
		out = append(out, catalogdto.SymptomOutput{ID: it.ID, Label: it.Label})
	}
	return out
}
