package out_test

import (
	"context"
	"testing"

	directoryout "diagnocare/internal/modules/directory/adapter/out"
	"diagnocare/internal/modules/directory/dto"
	"diagnocare/internal/modules/directory/usecase"
)

func TestEmbeddedDirectoryDecodesAndSearches(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(directoryout.NewEmbeddedSource())

	got, err := uc.Search(context.Background(), dto.SearchInput{Specialty: "Neurologue"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 neurologists, got %d", len(got))
	}
	if got[0].Name != "Dr. Sophie Martin" || got[0].Distance != "0.8 km" {
		t.Fatalf("expected closest first, got %+v", got[0])
	}

	specs, err := uc.Specialties(context.Background())
	if err != nil || len(specs) < 5 {
		t.Fatalf("unexpected specialties %v err=%v", specs, err)
	}
}

func TestYAMLSourceRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	src := directoryout.NewYAMLSource([]byte("specialists:\n  - id: x\n    colour: blue\n"))
	if _, err := src.All(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
