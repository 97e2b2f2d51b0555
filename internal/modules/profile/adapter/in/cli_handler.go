package in

import (
	"context"

	profiledto "diagnocare/internal/modules/profile/dto"
	profilein "diagnocare/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
}

func NewCLIHandler(usecase profilein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (profiledto.ProfileOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Set(ctx context.Context, input profiledto.ProfileInput) (profiledto.ProfileOutput, error) {
	return h.usecase.Save(ctx, input)
}
