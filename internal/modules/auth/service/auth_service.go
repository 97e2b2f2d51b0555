package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"diagnocare/internal/modules/auth/domain"
	authout "diagnocare/internal/modules/auth/port/out"
	apperrors "diagnocare/internal/platform/errors"
)

type AuthService struct {
	store authout.SessionStore
	log   *zap.Logger
}

func NewAuthService(store authout.SessionStore, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{store: store, log: log}
}

func (s *AuthService) ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("email and password are required: %w", apperrors.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return fmt.Errorf("email %q is not valid: %w", email, apperrors.ErrInvalidInput)
	}
	return nil
}

func (s *AuthService) ValidateRegistration(req authout.RegisterRequest) error {
	if err := s.ValidateCredentials(req.Email, req.Password); err != nil {
		return err
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("first and last name are required: %w", apperrors.ErrInvalidInput)
	}
	if req.Lang != "fr" && req.Lang != "en" {
		return fmt.Errorf("lang must be fr or en: %w", apperrors.ErrInvalidInput)
	}
	return nil
}

// PickRole returns the patient role id, else the first role.
func (s *AuthService) PickRole(roles []domain.Role) (int64, error) {
	for _, r := range roles {
		if strings.EqualFold(r.Name, domain.PatientRole) {
			return r.ID, nil
		}
	}
	if len(roles) == 0 {
		return 0, fmt.Errorf("no roles available: %w", apperrors.ErrNotFound)
	}
	return roles[0].ID, nil
}

// Persist writes tokens and user as three independent keys.
func (s *AuthService) Persist(ctx context.Context, result domain.AuthResult) error {
	if err := s.store.SaveAccessToken(ctx, result.Token); err != nil {
		return err
	}
	if err := s.store.SaveRefreshToken(ctx, result.RefreshToken); err != nil {
		return err
	}
	if err := s.store.SaveUser(ctx, result.User); err != nil {
		return err
	}
	s.log.Info("session stored", zap.Int64("user_id", result.User.ID))
	return nil
}

func (s *AuthService) Session(ctx context.Context) (domain.Session, error) {
	access, err := s.store.AccessToken(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	refresh, err := s.store.RefreshToken(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	user, err := s.store.User(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *AuthService) Forget(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("session cleared")
	return nil
}
