package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	authout "diagnocare/internal/modules/auth/adapter/out"
	"diagnocare/internal/modules/auth/domain"
	authdto "diagnocare/internal/modules/auth/dto"
	authport "diagnocare/internal/modules/auth/port/out"
	"diagnocare/internal/modules/auth/service"
	"diagnocare/internal/modules/auth/usecase"
	apperrors "diagnocare/internal/platform/errors"
)

type fakeGateway struct {
	result     domain.AuthResult
	roles      []domain.Role
	registered authport.RegisterRequest
	refreshed  string
	patched    domain.UserPatch
	deletedID  int64
	err        error
}

func (f *fakeGateway) Login(context.Context, string, string) (domain.AuthResult, error) {
	return f.result, f.err
}
func (f *fakeGateway) Register(_ context.Context, req authport.RegisterRequest) (domain.AuthResult, error) {
	f.registered = req
	return f.result, f.err
}
func (f *fakeGateway) Refresh(_ context.Context, token string) (domain.AuthResult, error) {
	f.refreshed = token
	return f.result, f.err
}
func (f *fakeGateway) Roles(context.Context) ([]domain.Role, error) { return f.roles, nil }
func (f *fakeGateway) UpdateUser(_ context.Context, _ int64, patch domain.UserPatch) error {
	f.patched = patch
	return f.err
}
func (f *fakeGateway) DeleteUser(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func newStore(t *testing.T) *authout.SQLiteSessionStore {
	t.Helper()
	store, err := authout.NewSQLiteSessionStore(filepath.Join(t.TempDir(), "diagnocare.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func authResult() domain.AuthResult {
	return domain.AuthResult{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		User:         domain.User{ID: 7, Email: "ana@example.com", FirstName: "Ana", LastName: "Diallo"},
	}
}

func TestLoginStoresTokensAndUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	gw := &fakeGateway{result: authResult()}
	uc := usecase.NewInteractor(service.NewAuthService(store, nil), gw, store)

	out, err := uc.Login(ctx, authdto.LoginInput{Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !out.Authenticated || out.User.DisplayName != "Ana Diallo" {
		t.Fatalf("unexpected output %+v", out)
	}
	if tok, _ := store.AccessToken(ctx); tok != "access-1" {
		t.Fatalf("access token not stored, got %q", tok)
	}
	if tok, _ := store.RefreshToken(ctx); tok != "refresh-1" {
		t.Fatalf("refresh token not stored, got %q", tok)
	}
	user, err := store.User(ctx)
	if err != nil || user.ID != 7 || user.Email != "ana@example.com" {
		t.Fatalf("user not stored: %+v %v", user, err)
	}
	if !uc.IsAuthenticated(ctx) {
		t.Fatalf("expected authenticated after login")
	}
}

func TestLoginRejectsMalformedInputBeforeCallingServer(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	uc := usecase.NewInteractor(service.NewAuthService(store, nil), &fakeGateway{err: errors.New("should not be called")}, store)
	if _, err := uc.Login(context.Background(), authdto.LoginInput{Email: "not-an-email", Password: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestLogoutAndDeleteClearAllKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for _, action := range []string{"logout", "delete"} {
		store := newStore(t)
		gw := &fakeGateway{result: authResult()}
		uc := usecase.NewInteractor(service.NewAuthService(store, nil), gw, store)
		if _, err := uc.Login(ctx, authdto.LoginInput{Email: "ana@example.com", Password: "secret"}); err != nil {
			t.Fatalf("%s: login: %v", action, err)
		}
		var err error
		if action == "logout" {
			err = uc.Logout(ctx)
		} else {
			err = uc.DeleteAccount(ctx)
		}
		if err != nil {
			t.Fatalf("%s: %v", action, err)
		}
		keys, err := store.Keys(ctx)
		if err != nil {
			t.Fatalf("%s: keys: %v", action, err)
		}
		if len(keys) != 0 {
			t.Fatalf("%s: expected empty store, got %v", action, keys)
		}
		if action == "delete" && gw.deletedID != 7 {
			t.Fatalf("expected user 7 deleted, got %d", gw.deletedID)
		}
		if _, err := uc.CurrentUser(ctx); !errors.Is(err, apperrors.ErrNotAuthenticated) {
			t.Fatalf("%s: expected not authenticated, got %v", action, err)
		}
	}
}

func TestRegisterWithoutTokensLeavesStoreUntouchedAndPicksPatientRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	gw := &fakeGateway{
		result: domain.AuthResult{User: domain.User{ID: 9, Email: "new@example.com"}},
		roles:  []domain.Role{{ID: 1, Name: "ADMIN"}, {ID: 3, Name: "PATIENT"}},
	}
	uc := usecase.NewInteractor(service.NewAuthService(store, nil), gw, store)

	out, err := uc.Register(ctx, authdto.RegisterInput{
		Email: "new@example.com", FirstName: "Noé", LastName: "Martin", Password: "pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.Authenticated {
		t.Fatalf("expected unauthenticated registration result")
	}
	if gw.registered.RoleID != 3 || gw.registered.Lang != "fr" {
		t.Fatalf("unexpected register request %+v", gw.registered)
	}
	keys, _ := store.Keys(ctx)
	if len(keys) != 0 {
		t.Fatalf("store must stay empty, got %v", keys)
	}
}

func TestRefreshWithoutStoredTokenFails(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	gw := &fakeGateway{result: authResult()}
	uc := usecase.NewInteractor(service.NewAuthService(store, nil), gw, store)
	if _, err := uc.Refresh(context.Background()); !errors.Is(err, apperrors.ErrNoRefreshToken) {
		t.Fatalf("expected ErrNoRefreshToken, got %v", err)
	}
	if gw.refreshed != "" {
		t.Fatalf("gateway must not be called")
	}
}

func TestUpdateUserMergesIntoStoredRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)
	gw := &fakeGateway{result: authResult()}
	uc := usecase.NewInteractor(service.NewAuthService(store, nil), gw, store)
	if _, err := uc.Login(ctx, authdto.LoginInput{Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	lang := "en"
	out, err := uc.UpdateUser(ctx, authdto.UpdateUserInput{Lang: &lang})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Lang != "en" || gw.patched.Lang == nil || *gw.patched.Lang != "en" {
		t.Fatalf("unexpected update %+v patch %+v", out, gw.patched)
	}
	user, _ := store.User(ctx)
	if user.Lang == nil || *user.Lang != "en" {
		t.Fatalf("stored user not merged: %+v", user)
	}

	bad := "de"
	if _, err := uc.UpdateUser(ctx, authdto.UpdateUserInput{Lang: &bad}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid lang, got %v", err)
	}
}
