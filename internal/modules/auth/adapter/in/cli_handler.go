package in

import (
	"context"

	authdto "diagnocare/internal/modules/auth/dto"
	authin "diagnocare/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (authdto.SessionOutput, error) {
	return h.usecase.Login(ctx, authdto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error) {
	return h.usecase.Register(ctx, input)
}

func (h CLIHandler) Refresh(ctx context.Context) (authdto.SessionOutput, error) {
	return h.usecase.Refresh(ctx)
}

func (h CLIHandler) Roles(ctx context.Context) ([]authdto.RoleOutput, error) {
	return h.usecase.Roles(ctx)
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) IsAuthenticated(ctx context.Context) bool {
	return h.usecase.IsAuthenticated(ctx)
}

func (h CLIHandler) WhoAmI(ctx context.Context) (authdto.UserOutput, error) {
	return h.usecase.CurrentUser(ctx)
}

func (h CLIHandler) UpdateUser(ctx context.Context, input authdto.UpdateUserInput) (authdto.UserOutput, error) {
	return h.usecase.UpdateUser(ctx, input)
}

func (h CLIHandler) DeleteAccount(ctx context.Context) error {
	return h.usecase.DeleteAccount(ctx)
}
