package out

import (
	"context"

	"diagnocare/internal/modules/auth/domain"
)

// SessionStore is the durable token/session store. Each value is an
// independent key; Clear removes all three.
type SessionStore interface {
	SaveAccessToken(ctx context.Context, token string) error
	AccessToken(ctx context.Context) (string, error)
	SaveRefreshToken(ctx context.Context, token string) error
	RefreshToken(ctx context.Context) (string, error)
	SaveUser(ctx context.Context, user domain.User) error
	User(ctx context.Context) (domain.User, error)
	Clear(ctx context.Context) error
}

type Gateway interface {
	Login(ctx context.Context, email, password string) (domain.AuthResult, error)
	Register(ctx context.Context, req RegisterRequest) (domain.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (domain.AuthResult, error)
	Roles(ctx context.Context) ([]domain.Role, error)
	UpdateUser(ctx context.Context, userID int64, patch domain.UserPatch) error
	DeleteUser(ctx context.Context, userID int64) error
}

type RegisterRequest struct {
	Email       string  `json:"email"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Lang        string  `json:"lang"`
	Password    string  `json:"password"`
	RoleID      int64   `json:"roleId"`
}
