package out

import (
	"context"

	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/modules/checkin/domain"
)

type Gateway interface {
	Submit(ctx context.Context, req domain.CreateRequest) (domain.CheckIn, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CheckIn, error)
}

type UserResolver interface {
	CurrentUser(ctx context.Context) (authdto.UserOutput, error)
}
