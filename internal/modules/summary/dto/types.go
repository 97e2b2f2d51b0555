package dto

type PathologyDetailOutput struct {
	Name        string
	Score       int
	Description string
	Specialist  string
}

type SummaryOutput struct {
	PredictionID         int64
	PatientName          string
	GeneratedAt          string
	Context              string
	Symptoms             []string
	HasRedFlags          bool
	RedFlags             []string
	Pathologies          []PathologyDetailOutput
	RecommendedSpecialty string
	Questions            []string
	Language             string
	CheckIn              bool
	// HasCheckIn is true when a check-in exists for the prediction or its
	// root, even if the prediction itself is not a follow-up.
	HasCheckIn     bool
	CheckInStatus  string
	CheckInOutcome string
	ScoreDelta     string
	CheckInCount   int
	// Markdown is the printable report body.
	Markdown string
}

type TimelineEventOutput struct {
	PredictionID int64
	Date         string
	Type         string
	Symptoms     []string
	Confidence   int
	// Status is Amélioration, Stable or Aggravation; "" without an outcome.
	Status string
}

type PDFOutput struct {
	Path  string
	Pages int
	Bytes int
}

type MarkdownOutput struct {
	Path  string
	Bytes int
}
