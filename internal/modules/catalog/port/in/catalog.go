package in

import (
	"context"

	"diagnocare/internal/modules/catalog/dto"
)

type Usecase interface {
	ListSymptoms(ctx context.Context) ([]dto.SymptomOutput, error)
	SearchSymptoms(ctx context.Context, label string) ([]dto.SymptomOutput, error)
	FilterSymptoms(ctx context.Context, query string) ([]dto.SymptomOutput, error)
}
