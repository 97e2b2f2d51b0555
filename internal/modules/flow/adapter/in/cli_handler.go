package in

import (
	"context"

	flowdto "diagnocare/internal/modules/flow/dto"
	flowin "diagnocare/internal/modules/flow/port/in"
)

type CLIHandler struct {
	usecase flowin.Usecase
}

func NewCLIHandler(usecase flowin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Evaluate runs one evaluation. A non-zero followUp starts a follow-up for
// that prediction first.
func (h CLIHandler) Evaluate(ctx context.Context, symptoms []string, followUp int64) (flowdto.EvaluateOutput, error) {
	if followUp > 0 {
		if _, err := h.usecase.StartFollowUp(ctx, followUp); err != nil {
			return flowdto.EvaluateOutput{}, err
		}
	}
	return h.usecase.Evaluate(ctx, flowdto.EvaluateInput{SymptomLabels: symptoms})
}

func (h CLIHandler) Result(ctx context.Context) (flowdto.ResultOutput, error) {
	return h.usecase.Result(ctx)
}

func (h CLIHandler) Dashboard(ctx context.Context) (flowdto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx)
}
