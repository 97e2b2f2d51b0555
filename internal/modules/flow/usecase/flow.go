package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	checkindto "diagnocare/internal/modules/checkin/dto"
	"diagnocare/internal/modules/flow/domain"
	flowdto "diagnocare/internal/modules/flow/dto"
	flowin "diagnocare/internal/modules/flow/port/in"
	flowout "diagnocare/internal/modules/flow/port/out"
	"diagnocare/internal/modules/flow/service"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	apperrors "diagnocare/internal/platform/errors"
)

type Interactor struct {
	store       flowout.FlowStore
	users       flowout.Users
	predictions flowout.Predictions
	checkIns    flowout.CheckIns
	log         *zap.Logger
}

func NewInteractor(
	store flowout.FlowStore,
	users flowout.Users,
	predictions flowout.Predictions,
	checkIns flowout.CheckIns,
	log *zap.Logger,
) flowin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{store: store, users: users, predictions: predictions, checkIns: checkIns, log: log}
}

func (i *Interactor) Evaluate(ctx context.Context, input flowdto.EvaluateInput) (flowdto.EvaluateOutput, error) {
	user, err := i.users.CurrentUser(ctx)
	if err != nil {
		return flowdto.EvaluateOutput{}, err
	}
	if user.ID == 0 {
		return flowdto.EvaluateOutput{}, apperrors.ErrNotAuthenticated
	}
	labels := make([]string, 0, len(input.SymptomLabels))
	for _, l := range input.SymptomLabels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return flowdto.EvaluateOutput{}, fmt.Errorf("select at least one symptom: %w", apperrors.ErrInvalidInput)
	}

	pending, err := i.store.LoadPendingCheckIn(ctx)
	switch {
	case err == nil:
		return i.followUp(ctx, pending, labels)
	case errors.Is(err, apperrors.ErrNoPendingCheckIn):
		return i.initial(ctx, labels)
	default:
		return flowdto.EvaluateOutput{}, err
	}
}

func (i *Interactor) initial(ctx context.Context, labels []string) (flowdto.EvaluateOutput, error) {
	res, err := i.predictions.Create(ctx, predictiondto.CreateInput{SymptomLabels: labels})
	if err != nil {
		return flowdto.EvaluateOutput{}, err
	}
	if err := i.store.SaveLastPrediction(ctx, res); err != nil {
		return flowdto.EvaluateOutput{}, err
	}
	return flowdto.EvaluateOutput{Destination: domain.DestinationResults, Last: res, HasLast: true}, nil
}

func (i *Interactor) followUp(ctx context.Context, pending domain.PendingCheckIn, labels []string) (flowdto.EvaluateOutput, error) {
	if _, err := i.checkIns.Submit(ctx, checkindto.SubmitInput{
		PreviousPredictionID: pending.PreviousPredictionID,
		SymptomLabels:        labels,
	}); err != nil {
		return flowdto.EvaluateOutput{}, err
	}
	latest, found, err := i.predictions.Latest(ctx)
	if err != nil {
		return flowdto.EvaluateOutput{}, err
	}
	out := flowdto.EvaluateOutput{Destination: domain.DestinationSummary, FollowUp: true}
	if found {
		out.Last = predictiondto.PredictionWithResultsOutput{
			Prediction: latest,
			MLResults:  []predictiondto.MLPredictionOutput{},
		}
		out.HasLast = true
		if err := i.store.SaveLastPrediction(ctx, out.Last); err != nil {
			return flowdto.EvaluateOutput{}, err
		}
	}
	if err := i.store.ClearPendingCheckIn(ctx); err != nil {
		return flowdto.EvaluateOutput{}, err
	}
	i.log.Info("follow-up recorded",
		zap.Int64("previous_prediction_id", pending.PreviousPredictionID),
		zap.Bool("latest_found", found))
	return out, nil
}

func (i *Interactor) StartFollowUp(ctx context.Context, previousPredictionID int64) (string, error) {
	if previousPredictionID <= 0 {
		return "", fmt.Errorf("previous prediction id must be positive: %w", apperrors.ErrInvalidInput)
	}
	if err := i.store.SavePendingCheckIn(ctx, domain.PendingCheckIn{PreviousPredictionID: previousPredictionID}); err != nil {
		return "", err
	}
	return domain.DestinationEvaluation, nil
}

func (i *Interactor) PendingCheckIn(ctx context.Context) (int64, bool) {
	p, err := i.store.LoadPendingCheckIn(ctx)
	if err != nil {
		return 0, false
	}
	return p.PreviousPredictionID, true
}

func (i *Interactor) CancelFollowUp(ctx context.Context) error {
	return i.store.ClearPendingCheckIn(ctx)
}

func (i *Interactor) LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error) {
	return i.store.LoadLastPrediction(ctx)
}

func (i *Interactor) Result(ctx context.Context) (flowdto.ResultOutput, error) {
	last, err := i.store.LoadLastPrediction(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoLastPrediction) {
			return service.Result(predictiondto.PredictionWithResultsOutput{}), nil
		}
		return flowdto.ResultOutput{}, err
	}
	return service.Result(last), nil
}

// Dashboard tolerates failures of either list and shows it empty.
func (i *Interactor) Dashboard(ctx context.Context) (flowdto.DashboardOutput, error) {
	user, err := i.users.CurrentUser(ctx)
	if err != nil {
		return flowdto.DashboardOutput{}, err
	}
	name := user.FirstName
	if name == "" {
		name = "Utilisateur"
	}
	predictions, err := i.predictions.ListMine(ctx)
	if err != nil {
		i.log.Debug("dashboard predictions unavailable", zap.Error(err))
		predictions = nil
	}
	checkIns, err := i.checkIns.List(ctx)
	if err != nil {
		i.log.Debug("dashboard check-ins unavailable", zap.Error(err))
		checkIns = nil
	}
	return service.Dashboard(name, predictions, checkIns), nil
}
