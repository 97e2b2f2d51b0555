package in

import (
	"context"

	"diagnocare/internal/modules/profile/dto"
)

type Usecase interface {
	// Get falls back to an empty profile when none can be loaded.
	Get(ctx context.Context) (dto.ProfileOutput, error)
	Save(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error)
}
