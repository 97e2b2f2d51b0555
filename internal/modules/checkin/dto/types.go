package dto

type SubmitInput struct {
	PreviousPredictionID int64
	SymptomLabels        []string
	SymptomIDs           []int64
}

type CheckInOutput struct {
	ID                   int64
	PreviousPredictionID int64
	Status               string
	Completed            bool
	// Evolution is one of better, stable or worse.
	Evolution      string
	EvolutionLabel string
	Date           string
	ScoreDelta     string
	WorseReason    string
}

type FollowUpsOutput struct {
	Pending   []CheckInOutput
	Completed []CheckInOutput
}
