package domain

const (
	StatusPending   = "PENDING"
	StatusSent24h   = "SENT_24H"
	StatusSent48h   = "SENT_48H"
	StatusCompleted = "COMPLETED"

	OutcomeImproving = "IMPROVING"
	OutcomeStable    = "STABLE"
	OutcomeWorsening = "WORSENING"
)

type Evolution string

const (
	EvolutionBetter Evolution = "better"
	EvolutionStable Evolution = "stable"
	EvolutionWorse  Evolution = "worse"
)

type CheckIn struct {
	ID                   int64    `json:"id"`
	UserID               int64    `json:"userId"`
	PreviousPredictionID int64    `json:"previousPredictionId"`
	Status               string   `json:"status"`
	Outcome              *string  `json:"outcome,omitempty"`
	WorseReason          *string  `json:"worseReason,omitempty"`
	PreviousBestScore    *float64 `json:"previousBestScore,omitempty"`
	NewBestScore         *float64 `json:"newBestScore,omitempty"`
	BestScoreDelta       *float64 `json:"bestScoreDelta,omitempty"`
	FirstReminderAt      *string  `json:"firstReminderAt,omitempty"`
	SecondReminderAt     *string  `json:"secondReminderAt,omitempty"`
	CompletedAt          *string  `json:"completedAt,omitempty"`
}

// Completed reports the only terminal status; every other status is pending.
func (c CheckIn) Completed() bool {
	return c.Status == StatusCompleted
}

func (c CheckIn) Evolution() Evolution {
	if c.Outcome == nil {
		return EvolutionStable
	}
	switch *c.Outcome {
	case OutcomeImproving:
		return EvolutionBetter
	case OutcomeWorsening:
		return EvolutionWorse
	default:
		return EvolutionStable
	}
}

// ReferenceDate is when the check-in was completed, else its first reminder.
func (c CheckIn) ReferenceDate() *string {
	if c.CompletedAt != nil && *c.CompletedAt != "" {
		return c.CompletedAt
	}
	if c.FirstReminderAt != nil && *c.FirstReminderAt != "" {
		return c.FirstReminderAt
	}
	return nil
}

type CreateRequest struct {
	UserID               int64    `json:"userId"`
	PreviousPredictionID int64    `json:"previousPredictionId"`
	SymptomIDs           []int64  `json:"symptomIds,omitempty"`
	SymptomLabels        []string `json:"symptomLabels,omitempty"`
}
