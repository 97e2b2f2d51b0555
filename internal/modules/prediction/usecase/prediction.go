package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"diagnocare/internal/modules/prediction/domain"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	predictionin "diagnocare/internal/modules/prediction/port/in"
	predictionout "diagnocare/internal/modules/prediction/port/out"
	"diagnocare/internal/modules/prediction/service"
	apperrors "diagnocare/internal/platform/errors"
)

// historyConcurrency bounds pathology lookups in flight.
const historyConcurrency = 8

type Interactor struct {
	svc     *service.PredictionService
	gateway predictionout.Gateway
	users   predictionout.UserResolver
	log     *zap.Logger
}

func NewInteractor(svc *service.PredictionService, gateway predictionout.Gateway, users predictionout.UserResolver, log *zap.Logger) predictionin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{svc: svc, gateway: gateway, users: users, log: log}
}

func (i *Interactor) Create(ctx context.Context, input predictiondto.CreateInput) (predictiondto.PredictionWithResultsOutput, error) {
	userID, err := i.userID(ctx)
	if err != nil {
		return predictiondto.PredictionWithResultsOutput{}, err
	}
	labels := cleanLabels(input.SymptomLabels)
	if len(labels) == 0 && len(input.SymptomIDs) == 0 && strings.TrimSpace(input.RawDescription) == "" {
		return predictiondto.PredictionWithResultsOutput{}, fmt.Errorf("at least one symptom is required: %w", apperrors.ErrInvalidInput)
	}
	res, err := i.gateway.Create(ctx, domain.CreateRequest{
		UserID:         userID,
		RawDescription: input.RawDescription,
		SymptomIDs:     input.SymptomIDs,
		SymptomLabels:  labels,
	})
	if err != nil {
		return predictiondto.PredictionWithResultsOutput{}, err
	}
	i.log.Info("prediction created",
		zap.Int64("prediction_id", res.Prediction.ID),
		zap.Int("ml_results", len(res.MLResults.Predictions)))
	return i.svc.WithResults(res), nil
}

func (i *Interactor) Get(ctx context.Context, predictionID int64) (predictiondto.PredictionOutput, error) {
	p, err := i.gateway.Get(ctx, predictionID)
	if err != nil {
		return predictiondto.PredictionOutput{}, err
	}
	return i.svc.Prediction(p), nil
}

func (i *Interactor) ListMine(ctx context.Context) ([]predictiondto.PredictionOutput, error) {
	items, err := i.listMine(ctx)
	if err != nil {
		return nil, err
	}
	return i.svc.Predictions(items), nil
}

func (i *Interactor) Latest(ctx context.Context) (predictiondto.PredictionOutput, bool, error) {
	items, err := i.listMine(ctx)
	if err != nil {
		return predictiondto.PredictionOutput{}, false, err
	}
	latest, ok := domain.Latest(items)
	if !ok {
		return predictiondto.PredictionOutput{}, false, nil
	}
	return i.svc.Prediction(latest), true, nil
}

func (i *Interactor) PathologyResults(ctx context.Context, predictionID int64) ([]predictiondto.PathologyResultOutput, error) {
	items, err := i.gateway.PathologyResults(ctx, predictionID)
	if err != nil {
		return nil, err
	}
	return i.svc.PathologyResults(items), nil
}

// History lists the user's predictions with the first pathology result of
// each. Lookups run concurrently; a failed lookup leaves that row without
// pathology details.
func (i *Interactor) History(ctx context.Context, filter predictiondto.HistoryFilter) ([]predictiondto.HistoryItemOutput, error) {
	if filter == "" {
		filter = predictiondto.HistoryAll
	}
	switch filter {
	case predictiondto.HistoryAll, predictiondto.HistoryRedFlags, predictiondto.HistoryThisMonth:
	default:
		return nil, fmt.Errorf("unknown history filter %q: %w", filter, apperrors.ErrInvalidInput)
	}
	items, err := i.listMine(ctx)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	firsts := make(map[int64]*domain.PathologyResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(historyConcurrency)
	for _, p := range items {
		g.Go(func() error {
			results, err := i.gateway.PathologyResults(gctx, p.ID)
			if err != nil {
				i.log.Debug("pathology lookup failed", zap.Int64("prediction_id", p.ID), zap.Error(err))
				return nil
			}
			if len(results) == 0 {
				return nil
			}
			first := results[0]
			mu.Lock()
			firsts[p.ID] = &first
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]predictiondto.HistoryItemOutput, 0, len(items))
	for _, p := range items {
		out = append(out, i.svc.HistoryItem(p, firsts[p.ID]))
	}
	return i.svc.FilterHistory(out, filter), nil
}

func (i *Interactor) listMine(ctx context.Context) ([]domain.Prediction, error) {
	userID, err := i.userID(ctx)
	if err != nil {
		return nil, err
	}
	return i.gateway.ListByUser(ctx, userID)
}

func (i *Interactor) userID(ctx context.Context) (int64, error) {
	user, err := i.users.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	if user.ID == 0 {
		return 0, apperrors.ErrNotAuthenticated
	}
	return user.ID, nil
}

func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
