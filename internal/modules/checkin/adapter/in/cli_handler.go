package in

import (
	"context"

	checkindto "diagnocare/internal/modules/checkin/dto"
	checkinin "diagnocare/internal/modules/checkin/port/in"
)

type CLIHandler struct {
	usecase checkinin.Usecase
}

func NewCLIHandler(usecase checkinin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]checkindto.CheckInOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) FollowUps(ctx context.Context) (checkindto.FollowUpsOutput, error) {
	return h.usecase.FollowUps(ctx)
}
