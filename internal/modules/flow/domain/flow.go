package domain

// Destinations returned by flow operations; they name pages.
const (
	DestinationResults    = "results"
	DestinationSummary    = "summary"
	DestinationEvaluation = "evaluation"
)

// Stage of the symptom evaluation form.
type Stage string

const (
	StageSymptoms Stage = "symptoms"
	StageAnalysis Stage = "analysis"
)

// PendingCheckIn references the prediction a follow-up will be attached to.
type PendingCheckIn struct {
	PreviousPredictionID int64
}

const (
	ResultAttention = "Attention requise"
	ResultDone      = "Évaluation terminée"

	// RecentLimit is how many evaluations the dashboard lists.
	RecentLimit = 3
)
