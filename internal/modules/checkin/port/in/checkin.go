package in

import (
	"context"

	"diagnocare/internal/modules/checkin/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) (dto.CheckInOutput, error)
	List(ctx context.Context) ([]dto.CheckInOutput, error)
	FollowUps(ctx context.Context) (dto.FollowUpsOutput, error)
}
