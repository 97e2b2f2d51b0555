package in

import (
	"context"

	"diagnocare/internal/modules/directory/dto"
)

type Usecase interface {
	Search(ctx context.Context, input dto.SearchInput) ([]dto.SpecialistOutput, error)
	Specialties(ctx context.Context) ([]string, error)
}
