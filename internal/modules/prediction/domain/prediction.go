package domain

import (
	"time"

	"diagnocare/internal/platform/timestamp"
)

// Prediction mirrors the server record. Nearly every field is optional.
type Prediction struct {
	ID                   int64    `json:"id"`
	BestScore            *float64 `json:"bestScore,omitempty"`
	PDFReportURL         *string  `json:"pdfReportUrl,omitempty"`
	IsRedAlert           *bool    `json:"isRedAlert,omitempty"`
	Comment              *string  `json:"comment,omitempty"`
	SessionSymptomID     *int64   `json:"sessionSymptomId,omitempty"`
	PreviousPredictionID *int64   `json:"previousPredictionId,omitempty"`
	CreatedAt            *string  `json:"createdAt,omitempty"`
}

func (p Prediction) IsFollowUp() bool {
	return p.PreviousPredictionID != nil && *p.PreviousPredictionID != 0
}

type MLPrediction struct {
	Rank                  *int     `json:"rank,omitempty"`
	Disease               *string  `json:"disease,omitempty"`
	Probability           *float64 `json:"probability,omitempty"`
	Specialist            *string  `json:"specialist,omitempty"`
	SpecialistProbability *float64 `json:"specialist_probability,omitempty"`
	Description           *string  `json:"description,omitempty"`
	DiseaseFr             *string  `json:"disease_fr,omitempty"`
	SpecialistFr          *string  `json:"specialist_fr,omitempty"`
	DiseaseEn             *string  `json:"disease_en,omitempty"`
	SpecialistEn          *string  `json:"specialist_en,omitempty"`
}

type MLResponse struct {
	Predictions []MLPrediction `json:"predictions,omitempty"`
	Language    *string        `json:"language,omitempty"`
}

type PredictionWithResults struct {
	Prediction Prediction `json:"prediction"`
	MLResults  MLResponse `json:"mlResults"`
}

type PathologyResult struct {
	ID                    int64    `json:"id"`
	DiseaseScore          *float64 `json:"diseaseScore,omitempty"`
	Description           *string  `json:"description,omitempty"`
	PathologyID           *int64   `json:"pathologyId,omitempty"`
	PathologyName         *string  `json:"pathologyName,omitempty"`
	DoctorID              *int64   `json:"doctorId,omitempty"`
	DoctorSpecialistLabel *string  `json:"doctorSpecialistLabel,omitempty"`
}

type CreateRequest struct {
	UserID         int64    `json:"userId"`
	RawDescription string   `json:"rawDescription"`
	SymptomIDs     []int64  `json:"symptomIds,omitempty"`
	SymptomLabels  []string `json:"symptomLabels,omitempty"`
}

// Latest returns the prediction with the greatest parsed creation time.
// Records without a parseable timestamp are skipped; ties keep the first.
func Latest(predictions []Prediction) (Prediction, bool) {
	var (
		best   Prediction
		bestAt time.Time
		found  bool
	)
	for _, p := range predictions {
		at, ok := timestamp.ParsePtr(p.CreatedAt)
		if !ok {
			continue
		}
		if !found || at.After(bestAt) {
			best, bestAt, found = p, at, true
		}
	}
	return best, found
}
