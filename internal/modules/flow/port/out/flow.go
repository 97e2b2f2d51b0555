package out

import (
	"context"

	authdto "diagnocare/internal/modules/auth/dto"
	checkindto "diagnocare/internal/modules/checkin/dto"
	"diagnocare/internal/modules/flow/domain"
	predictiondto "diagnocare/internal/modules/prediction/dto"
)

// FlowStore holds the two per-process slots. Empty slots report
// apperrors.ErrNoLastPrediction and apperrors.ErrNoPendingCheckIn.
type FlowStore interface {
	SaveLastPrediction(ctx context.Context, last predictiondto.PredictionWithResultsOutput) error
	LoadLastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error)
	ClearLastPrediction(ctx context.Context) error
	SavePendingCheckIn(ctx context.Context, pending domain.PendingCheckIn) error
	LoadPendingCheckIn(ctx context.Context) (domain.PendingCheckIn, error)
	ClearPendingCheckIn(ctx context.Context) error
}

type Users interface {
	CurrentUser(ctx context.Context) (authdto.UserOutput, error)
}

type Predictions interface {
	Create(ctx context.Context, input predictiondto.CreateInput) (predictiondto.PredictionWithResultsOutput, error)
	ListMine(ctx context.Context) ([]predictiondto.PredictionOutput, error)
	Latest(ctx context.Context) (predictiondto.PredictionOutput, bool, error)
}

type CheckIns interface {
	Submit(ctx context.Context, input checkindto.SubmitInput) (checkindto.CheckInOutput, error)
	List(ctx context.Context) ([]checkindto.CheckInOutput, error)
}
