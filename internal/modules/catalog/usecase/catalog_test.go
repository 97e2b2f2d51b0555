package usecase_test

import (
	"context"
	"testing"

	"diagnocare/internal/modules/catalog/domain"
	"diagnocare/internal/modules/catalog/service"
	"diagnocare/internal/modules/catalog/usecase"
)

type fakeGateway struct {
	items []domain.Symptom
	calls int
}

func (f *fakeGateway) List(context.Context) ([]domain.Symptom, error) {
	f.calls++
	return f.items, nil
}

func (f *fakeGateway) Search(_ context.Context, label string) ([]domain.Symptom, error) {
	return domain.Filter(f.items, label), nil
}

func TestFilterIsCaseInsensitiveAndCatalogIsLoadedOnce(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{items: []domain.Symptom{
		{ID: 2, Label: "Toux"},
		{ID: 1, Label: "Fièvre"},
		{ID: 3, Label: "Mal de tête"},
		{ID: 1, Label: "Fièvre"},
	}}
	uc := usecase.NewInteractor(service.NewCatalogService(gw))

	all, err := uc.ListSymptoms(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Label != "Fièvre" {
		t.Fatalf("expected deduplicated sorted catalog, got %+v", all)
	}

	got, err := uc.FilterSymptoms(context.Background(), "TÊTE")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if gw.calls != 1 {
		t.Fatalf("expected one catalog fetch, got %d", gw.calls)
	}
}
