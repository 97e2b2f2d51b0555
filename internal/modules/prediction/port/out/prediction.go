package out

import (
	"context"

	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/modules/prediction/domain"
)

type Gateway interface {
	Create(ctx context.Context, req domain.CreateRequest) (domain.PredictionWithResults, error)
	Get(ctx context.Context, predictionID int64) (domain.Prediction, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Prediction, error)
	PathologyResults(ctx context.Context, predictionID int64) ([]domain.PathologyResult, error)
}

// UserResolver yields the signed-in user.
type UserResolver interface {
	CurrentUser(ctx context.Context) (authdto.UserOutput, error)
}
