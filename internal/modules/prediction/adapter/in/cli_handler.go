package in

import (
	"context"

	predictiondto "diagnocare/internal/modules/prediction/dto"
	predictionin "diagnocare/internal/modules/prediction/port/in"
)

type CLIHandler struct {
	usecase predictionin.Usecase
}

func NewCLIHandler(usecase predictionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]predictiondto.PredictionOutput, error) {
	return h.usecase.ListMine(ctx)
}

func (h CLIHandler) Show(ctx context.Context, predictionID int64) (predictiondto.PredictionOutput, error) {
	return h.usecase.Get(ctx, predictionID)
}

func (h CLIHandler) Results(ctx context.Context, predictionID int64) ([]predictiondto.PathologyResultOutput, error) {
	return h.usecase.PathologyResults(ctx, predictionID)
}

func (h CLIHandler) History(ctx context.Context, filter string) ([]predictiondto.HistoryItemOutput, error) {
	return h.usecase.History(ctx, predictiondto.HistoryFilter(filter))
}
