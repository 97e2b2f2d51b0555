package out

import (
	"context"

	"diagnocare/internal/modules/catalog/domain"
)

type Gateway interface {
	List(ctx context.Context) ([]domain.Symptom, error)
	Search(ctx context.Context, label string) ([]domain.Symptom, error)
}
