package usecase

import (
	"context"

	"go.uber.org/zap"

	"diagnocare/internal/modules/profile/domain"
	profiledto "diagnocare/internal/modules/profile/dto"
	profilein "diagnocare/internal/modules/profile/port/in"
	profileout "diagnocare/internal/modules/profile/port/out"
	"diagnocare/internal/modules/profile/service"
	apperrors "diagnocare/internal/platform/errors"
)

type Interactor struct {
	gateway profileout.Gateway
	users   profileout.UserResolver
	log     *zap.Logger
}

func NewInteractor(gateway profileout.Gateway, users profileout.UserResolver, log *zap.Logger) profilein.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{gateway: gateway, users: users, log: log}
}

func (i *Interactor) Get(ctx context.Context) (profiledto.ProfileOutput, error) {
	p, err := i.load(ctx)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	return service.ToOutput(p), nil
}

func (i *Interactor) Save(ctx context.Context, input profiledto.ProfileInput) (profiledto.ProfileOutput, error) {
	current, err := i.load(ctx)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	next, err := service.Apply(current, input)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	saved, err := i.gateway.Upsert(ctx, next)
	if err != nil {
		return profiledto.ProfileOutput{}, err
	}
	// The server echo may omit the owner.
	saved.UserID = next.UserID
	i.log.Info("patient profile saved", zap.Int64("user_id", next.UserID))
	return service.ToOutput(saved), nil
}

// load returns the stored profile, or an empty one for the user when the
// lookup fails.
func (i *Interactor) load(ctx context.Context) (domain.Profile, error) {
	user, err := i.users.CurrentUser(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if user.ID == 0 {
		return domain.Profile{}, apperrors.ErrNotAuthenticated
	}
	p, err := i.gateway.Get(ctx, user.ID)
	if err != nil {
		i.log.Debug("profile lookup failed, using empty profile", zap.Error(err))
		return domain.Empty(user.ID), nil
	}
	p.UserID = user.ID
	if p.FamilyAntecedents == nil {
		p.FamilyAntecedents = []string{}
	}
	return p, nil
}
