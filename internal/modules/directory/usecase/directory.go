package usecase

import (
	"context"
	"fmt"

	"diagnocare/internal/modules/directory/domain"
	directorydto "diagnocare/internal/modules/directory/dto"
	directoryin "diagnocare/internal/modules/directory/port/in"
	directoryout "diagnocare/internal/modules/directory/port/out"
	"diagnocare/internal/modules/directory/service"
)

type Interactor struct {
	source directoryout.Source
}

func NewInteractor(source directoryout.Source) directoryin.Usecase {
	return &Interactor{source: source}
}

func (i *Interactor) Search(ctx context.Context, input directorydto.SearchInput) ([]directorydto.SpecialistOutput, error) {
	all, err := i.source.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load specialist directory: %w", err)
	}
	matched := domain.Match(all, domain.Query{Specialty: input.Specialty, Text: input.Query})
	out := make([]directorydto.SpecialistOutput, 0, len(matched))
	for _, s := range matched {
		out = append(out, service.ToOutput(s))
	}
	return out, nil
}

func (i *Interactor) Specialties(ctx context.Context) ([]string, error) {
	all, err := i.source.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load specialist directory: %w", err)
	}
	return domain.Specialties(all), nil
}
