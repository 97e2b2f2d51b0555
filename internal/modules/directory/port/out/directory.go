package out

import (
	"context"

	"diagnocare/internal/modules/directory/domain"
)

// Source yields the full specialist directory.
type Source interface {
	All(ctx context.Context) ([]domain.Specialist, error)
}
