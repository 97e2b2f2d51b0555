package domain

type PathologyDetail struct {
	PathologyName *string  `json:"pathologyName,omitempty"`
	DiseaseScore  *float64 `json:"diseaseScore,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Specialist    *string  `json:"specialist,omitempty"`
}

type TimelineEvent struct {
	PredictionID *int64   `json:"predictionId,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Symptoms     []string `json:"symptoms,omitempty"`
	Score        *float64 `json:"score,omitempty"`
	Delta        *float64 `json:"delta,omitempty"`
	Outcome      *string  `json:"outcome,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// Summary is the consultation summary attached to one prediction.
type Summary struct {
	PatientName          *string           `json:"patientName,omitempty"`
	SymptomsDescription  *string           `json:"symptomsDescription,omitempty"`
	Symptoms             []string          `json:"symptoms,omitempty"`
	SymptomsCount        *int              `json:"symptomsCount,omitempty"`
	HasRedFlags          *bool             `json:"hasRedFlags,omitempty"`
	RedFlags             []string          `json:"redFlags,omitempty"`
	PotentialPathologies []string          `json:"potentialPathologies,omitempty"`
	PathologyDetails     []PathologyDetail `json:"pathologyDetails,omitempty"`
	RecommendedSpecialty *string           `json:"recommendedSpecialty,omitempty"`
	QuestionsForDoctor   []string          `json:"questionsForDoctor,omitempty"`
	PDFURL               *string           `json:"pdfUrl,omitempty"`
	Language             *string           `json:"language,omitempty"`
	GeneratedAt          *string           `json:"generatedAt,omitempty"`
	CheckIn              *bool             `json:"checkIn,omitempty"`
	PreviousPredictionID *int64            `json:"previousPredictionId,omitempty"`
	CheckInStatus        *string           `json:"checkInStatus,omitempty"`
	CheckInOutcome       *string           `json:"checkInOutcome,omitempty"`
	WorseReason          *string           `json:"worseReason,omitempty"`
	PreviousBestScore    *float64          `json:"previousBestScore,omitempty"`
	CurrentBestScore     *float64          `json:"currentBestScore,omitempty"`
	BestScoreDelta       *float64          `json:"bestScoreDelta,omitempty"`
	CheckInCount         *int              `json:"checkInCount,omitempty"`
	Timeline             []TimelineEvent   `json:"timeline,omitempty"`
}
