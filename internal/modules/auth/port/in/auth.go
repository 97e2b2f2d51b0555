package in

import (
	"context"

	"diagnocare/internal/modules/auth/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.SessionOutput, error)
	Refresh(ctx context.Context) (dto.SessionOutput, error)
	Roles(ctx context.Context) ([]dto.RoleOutput, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	CurrentUser(ctx context.Context) (dto.UserOutput, error)
	UpdateUser(ctx context.Context, input dto.UpdateUserInput) (dto.UserOutput, error)
	DeleteAccount(ctx context.Context) error
}
