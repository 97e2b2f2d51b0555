package in

import (
	"context"

	"diagnocare/internal/modules/prediction/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.PredictionWithResultsOutput, error)
	Get(ctx context.Context, predictionID int64) (dto.PredictionOutput, error)
	ListMine(ctx context.Context) ([]dto.PredictionOutput, error)
	// Latest returns found=false when no prediction has a usable timestamp.
	Latest(ctx context.Context) (dto.PredictionOutput, bool, error)
	PathologyResults(ctx context.Context, predictionID int64) ([]dto.PathologyResultOutput, error)
	History(ctx context.Context, filter dto.HistoryFilter) ([]dto.HistoryItemOutput, error)
}
