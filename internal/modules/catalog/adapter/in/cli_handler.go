package in

import (
	"context"

	catalogdto "diagnocare/internal/modules/catalog/dto"
	catalogin "diagnocare/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]catalogdto.SymptomOutput, error) {
	return h.usecase.ListSymptoms(ctx)
}

func (h CLIHandler) Search(ctx context.Context, label string) ([]catalogdto.SymptomOutput, error) {
	return h.usecase.SearchSymptoms(ctx, label)
}

func (h CLIHandler) Filter(ctx context.Context, query string) ([]catalogdto.SymptomOutput, error) {
	return h.usecase.FilterSymptoms(ctx, query)
}
