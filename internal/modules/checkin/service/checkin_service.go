package service

import (
	"strconv"

	"diagnocare/internal/modules/checkin/domain"
	checkindto "diagnocare/internal/modules/checkin/dto"
	"diagnocare/internal/platform/opt"
	"diagnocare/internal/platform/timestamp"
)

var evolutionLabels = map[domain.Evolution]string{
	domain.EvolutionBetter: "Amélioration",
	domain.EvolutionStable: "Stable",
	domain.EvolutionWorse:  "Aggravation",
}

func ToOutput(c domain.CheckIn) checkindto.CheckInOutput {
	evo := c.Evolution()
	out := checkindto.CheckInOutput{
		ID:                   c.ID,
		PreviousPredictionID: c.PreviousPredictionID,
		Status:               c.Status,
		Completed:            c.Completed(),
		Evolution:            string(evo),
		EvolutionLabel:       evolutionLabels[evo],
		Date:                 timestamp.Format(c.ReferenceDate()),
		ScoreDelta:           opt.Placeholder,
		WorseReason:          opt.String(c.WorseReason, ""),
	}
	if c.BestScoreDelta != nil {
		out.ScoreDelta = strconv.FormatFloat(*c.BestScoreDelta, 'f', -1, 64)
	}
	return out
}

// Split partitions check-ins into pending and completed, keeping order.
func Split(items []domain.CheckIn) checkindto.FollowUpsOutput {
	out := checkindto.FollowUpsOutput{
		Pending:   []checkindto.CheckInOutput{},
		Completed: []checkindto.CheckInOutput{},
	}
	for _, c := range items {
		if c.Completed() {
			out.Completed = append(out.Completed, ToOutput(c))
		} else {
			out.Pending = append(out.Pending, ToOutput(c))
		}
	}
	return out
}
