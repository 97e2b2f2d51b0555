package out

import (
	"context"

	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/modules/profile/domain"
)

type Gateway interface {
	Get(ctx context.Context, userID int64) (domain.Profile, error)
	Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

type UserResolver interface {
	CurrentUser(ctx context.Context) (authdto.UserOutput, error)
}
