package dto

type ProfileOutput struct {
	UserID            int64
	Saved             bool
	Age               *int
	Gender            string
	Weight            *float64
	MeanBloodPressure *float64
	MeanCholesterol   *float64
	BMI               *float64
	IsSmoking         bool
	Sedentary         bool
	Alcohol           bool
	FamilyAntecedents []string
}

// ProfileInput is a partial update; nil fields keep the stored value.
type ProfileInput struct {
	Age               *int
	Gender            *string
	Weight            *float64
	MeanBloodPressure *float64
	MeanCholesterol   *float64
	BMI               *float64
	IsSmoking         *bool
	Sedentary         *bool
	Alcohol           *bool
	// FamilyAntecedents is a comma separated list.
	FamilyAntecedents *string
}
