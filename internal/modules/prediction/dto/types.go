package dto

import "time"

type CreateInput struct {
	SymptomLabels  []string
	SymptomIDs     []int64
	RawDescription string
}

type PredictionOutput struct {
	ID int64
	// CreatedAt is the raw server value, "" when absent.
	CreatedAt            string
	Date                 string
	BestScore            int
	RedAlert             bool
	Comment              string
	PreviousPredictionID int64
	FollowUp             bool
}

// MLPredictionOutput carries a model prediction with defaults applied.
type MLPredictionOutput struct {
	Rank        int
	Disease     string
	Confidence  int
	Specialist  string
	Description string
}

type PredictionWithResultsOutput struct {
	Prediction PredictionOutput
	MLResults  []MLPredictionOutput
	Language   string
}

type PathologyResultOutput struct {
	ID          int64
	Pathology   string
	Specialist  string
	Score       int
	Description string
}

type HistoryFilter string

const (
	HistoryAll       HistoryFilter = "all"
	HistoryRedFlags  HistoryFilter = "red-flags"
	HistoryThisMonth HistoryFilter = "this-month"
)

type HistoryItemOutput struct {
	ID         int64
	Date       string
	At         time.Time
	Pathology  string
	Specialist string
	Confidence int
	RedFlag    bool
	Type       string
}
