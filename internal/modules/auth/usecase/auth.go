package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"diagnocare/internal/modules/auth/domain"
	authdto "diagnocare/internal/modules/auth/dto"
	authin "diagnocare/internal/modules/auth/port/in"
	authout "diagnocare/internal/modules/auth/port/out"
	"diagnocare/internal/modules/auth/service"
	apperrors "diagnocare/internal/platform/errors"
)

type Interactor struct {
	svc     *service.AuthService
	gateway authout.Gateway
	store   authout.SessionStore
}

func NewInteractor(svc *service.AuthService, gateway authout.Gateway, store authout.SessionStore) authin.Usecase {
	return &Interactor{svc: svc, gateway: gateway, store: store}
}

func (i *Interactor) Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error) {
	if err := i.svc.ValidateCredentials(input.Email, input.Password); err != nil {
		return authdto.SessionOutput{}, err
	}
	result, err := i.gateway.Login(ctx, strings.TrimSpace(input.Email), input.Password)
	if err != nil {
		return authdto.SessionOutput{}, err
	}
	if err := i.svc.Persist(ctx, result); err != nil {
		return authdto.SessionOutput{}, err
	}
	return authdto.SessionOutput{Authenticated: true, User: toUserOutput(result.User)}, nil
}

func (i *Interactor) Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error) {
	lang := input.Lang
	if lang == "" {
		lang = "fr"
	}
	req := authout.RegisterRequest{
		Email:     strings.TrimSpace(input.Email),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Lang:      lang,
		Password:  input.Password,
		RoleID:    input.RoleID,
	}
	if phone := strings.TrimSpace(input.PhoneNumber); phone != "" {
		req.PhoneNumber = &phone
	}
	if err := i.svc.ValidateRegistration(req); err != nil {
		return authdto.SessionOutput{}, err
	}
	if req.RoleID == 0 {
		roles, err := i.gateway.Roles(ctx)
		if err != nil {
			return authdto.SessionOutput{}, fmt.Errorf("load roles: %w", err)
		}
		if req.RoleID, err = i.svc.PickRole(roles); err != nil {
			return authdto.SessionOutput{}, err
		}
	}

	result, err := i.gateway.Register(ctx, req)
	if err != nil {
		return authdto.SessionOutput{}, err
	}
	if !result.HasTokens() {
		return authdto.SessionOutput{Authenticated: false, User: toUserOutput(result.User)}, nil
	}
	if err := i.svc.Persist(ctx, result); err != nil {
		return authdto.SessionOutput{}, err
	}
	return authdto.SessionOutput{Authenticated: true, User: toUserOutput(result.User)}, nil
}

func (i *Interactor) Refresh(ctx context.Context) (authdto.SessionOutput, error) {
	token, err := i.store.RefreshToken(ctx)
	if err != nil {
		return authdto.SessionOutput{}, err
	}
	if token == "" {
		return authdto.SessionOutput{}, apperrors.ErrNoRefreshToken
	}
	result, err := i.gateway.Refresh(ctx, token)
	if err != nil {
		return authdto.SessionOutput{}, err
	}
	if err := i.svc.Persist(ctx, result); err != nil {
		return authdto.SessionOutput{}, err
	}
	return authdto.SessionOutput{Authenticated: true, User: toUserOutput(result.User)}, nil
}

func (i *Interactor) Roles(ctx context.Context) ([]authdto.RoleOutput, error) {
	roles, err := i.gateway.Roles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]authdto.RoleOutput, 0, len(roles))
	for _, r := range roles {
		out = append(out, authdto.RoleOutput{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Forget(ctx)
}

func (i *Interactor) IsAuthenticated(ctx context.Context) bool {
	token, err := i.store.AccessToken(ctx)
	return err == nil && token != ""
}

func (i *Interactor) CurrentUser(ctx context.Context) (authdto.UserOutput, error) {
	user, err := i.store.User(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSession) {
			return authdto.UserOutput{}, apperrors.ErrNotAuthenticated
		}
		return authdto.UserOutput{}, err
	}
	if user.ID == 0 {
		return authdto.UserOutput{}, apperrors.ErrNotAuthenticated
	}
	return toUserOutput(user), nil
}

func (i *Interactor) UpdateUser(ctx context.Context, input authdto.UpdateUserInput) (authdto.UserOutput, error) {
	user, err := i.currentDomainUser(ctx)
	if err != nil {
		return authdto.UserOutput{}, err
	}
	patch := domain.UserPatch{
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Lang:        input.Lang,
		Password:    input.Password,
	}
	if patch.Empty() {
		return authdto.UserOutput{}, fmt.Errorf("nothing to update: %w", apperrors.ErrInvalidInput)
	}
	if patch.Lang != nil && *patch.Lang != "fr" && *patch.Lang != "en" {
		return authdto.UserOutput{}, fmt.Errorf("lang must be fr or en: %w", apperrors.ErrInvalidInput)
	}
	if err := i.gateway.UpdateUser(ctx, user.ID, patch); err != nil {
		return authdto.UserOutput{}, err
	}
	updated := user.Apply(patch)
	if err := i.store.SaveUser(ctx, updated); err != nil {
		return authdto.UserOutput{}, err
	}
	return toUserOutput(updated), nil
}

func (i *Interactor) DeleteAccount(ctx context.Context) error {
	user, err := i.currentDomainUser(ctx)
	if err != nil {
		return err
	}
	if err := i.gateway.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	return i.svc.Forget(ctx)
}

func (i *Interactor) currentDomainUser(ctx context.Context) (domain.User, error) {
	user, err := i.store.User(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoSession) {
			return domain.User{}, apperrors.ErrNotAuthenticated
		}
		return domain.User{}, err
	}
	if user.ID == 0 {
		return domain.User{}, apperrors.ErrNotAuthenticated
	}
	return user, nil
}

func toUserOutput(u domain.User) authdto.UserOutput {
	out := authdto.UserOutput{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName(),
	}
	if u.PhoneNumber != nil {
		out.PhoneNumber = *u.PhoneNumber
	}
	if u.Lang != nil {
		out.Lang = *u.Lang
	}
	return out
}
