package dto

import predictiondto "diagnocare/internal/modules/prediction/dto"

type EvaluateInput struct {
	SymptomLabels []string
}

type EvaluateOutput struct {
	// Destination is the page to show next: results or summary.
	Destination string
	FollowUp    bool
	Last        predictiondto.PredictionWithResultsOutput
	// HasLast is false when a follow-up found no dated prediction to show.
	HasLast bool
}

type PathologyView struct {
	Name        string
	Confidence  int
	Description string
	Specialist  string
}

type ResultOutput struct {
	Available       bool
	PredictionID    int64
	Date            string
	RedAlert        bool
	Top             PathologyView
	Others          []PathologyView
	Recommendations []string
}

type RecentEvaluation struct {
	ID         int64
	Date       string
	Result     string
	Confidence int
	Urgent     bool
}

type DashboardOutput struct {
	UserName         string
	TotalEvaluations int
	ActiveAlerts     int
	HasRedFlag       bool
	PendingFollowUps int
	NextFollowUp     string
	Recent           []RecentEvaluation
}
