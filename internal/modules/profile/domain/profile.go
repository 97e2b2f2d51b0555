package domain

import "strings"

var Genders = []string{"MALE", "FEMALE", "OTHER"}

type Profile struct {
	ID                *int64   `json:"id,omitempty"`
	UserID            int64    `json:"userId"`
	IsSmoking         *bool    `json:"isSmoking,omitempty"`
	Age               *int     `json:"age,omitempty"`
	Gender            *string  `json:"gender,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	MeanBloodPressure *float64 `json:"meanBloodPressure,omitempty"`
	MeanCholesterol   *float64 `json:"meanCholesterol,omitempty"`
	Sedentary         *bool    `json:"sedentary,omitempty"`
	BMI               *float64 `json:"bmi,omitempty"`
	Alcohol           *bool    `json:"alcohol,omitempty"`
	FamilyAntecedents []string `json:"familyAntecedents"`
}

// Empty is the profile shown before the user saved anything.
func Empty(userID int64) Profile {
	return Profile{UserID: userID, FamilyAntecedents: []string{}}
}

// ParseAntecedents splits a comma separated list, trimming items and
// dropping empty ones.
func ParseAntecedents(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ValidGender(g string) bool {
	if g == "" {
		return true
	}
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}
