package in

import (
	"context"

	"diagnocare/internal/modules/flow/dto"
	predictiondto "diagnocare/internal/modules/prediction/dto"
)

type Usecase interface {
	// Evaluate submits the selected symptoms. With a pending follow-up it
	// records a check-in, otherwise it requests a new prediction. Nothing is
	// committed on failure.
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
	StartFollowUp(ctx context.Context, previousPredictionID int64) (string, error)
	PendingCheckIn(ctx context.Context) (int64, bool)
	CancelFollowUp(ctx context.Context) error
	LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error)
	Result(ctx context.Context) (dto.ResultOutput, error)
	Dashboard(ctx context.Context) (dto.DashboardOutput, error)
}
