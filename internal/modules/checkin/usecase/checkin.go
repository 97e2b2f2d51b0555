package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"diagnocare/internal/modules/checkin/domain"
	checkindto "diagnocare/internal/modules/checkin/dto"
	checkinin "diagnocare/internal/modules/checkin/port/in"
	checkinout "diagnocare/internal/modules/checkin/port/out"
	"diagnocare/internal/modules/checkin/service"
	apperrors "diagnocare/internal/platform/errors"
)

type Interactor struct {
	gateway checkinout.Gateway
	users   checkinout.UserResolver
	log     *zap.Logger
}

func NewInteractor(gateway checkinout.Gateway, users checkinout.UserResolver, log *zap.Logger) checkinin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{gateway: gateway, users: users, log: log}
}

func (i *Interactor) Submit(ctx context.Context, input checkindto.SubmitInput) (checkindto.CheckInOutput, error) {
	userID, err := i.userID(ctx)
	if err != nil {
		return checkindto.CheckInOutput{}, err
	}
	if input.PreviousPredictionID <= 0 {
		return checkindto.CheckInOutput{}, fmt.Errorf("previous prediction id is required: %w", apperrors.ErrInvalidInput)
	}
	c, err := i.gateway.Submit(ctx, domain.CreateRequest{
		UserID:               userID,
		PreviousPredictionID: input.PreviousPredictionID,
		SymptomIDs:           input.SymptomIDs,
		SymptomLabels:        input.SymptomLabels,
	})
	if err != nil {
		return checkindto.CheckInOutput{}, err
	}
	i.log.Info("check-in submitted",
		zap.Int64("check_in_id", c.ID),
		zap.Int64("previous_prediction_id", input.PreviousPredictionID),
		zap.String("status", c.Status))
	return service.ToOutput(c), nil
}

func (i *Interactor) List(ctx context.Context) ([]checkindto.CheckInOutput, error) {
	items, err := i.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]checkindto.CheckInOutput, 0, len(items))
	for _, c := range items {
		out = append(out, service.ToOutput(c))
	}
	return out, nil
}

func (i *Interactor) FollowUps(ctx context.Context) (checkindto.FollowUpsOutput, error) {
	items, err := i.list(ctx)
	if err != nil {
		return checkindto.FollowUpsOutput{}, err
	}
	return service.Split(items), nil
}

func (i *Interactor) list(ctx context.Context) ([]domain.CheckIn, error) {
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
