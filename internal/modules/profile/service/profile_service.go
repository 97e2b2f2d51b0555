package service

import (
	"fmt"
	"strings"

	"diagnocare/internal/modules/profile/domain"
	profiledto "diagnocare/internal/modules/profile/dto"
	apperrors "diagnocare/internal/platform/errors"
	"diagnocare/internal/platform/opt"
)

func ToOutput(p domain.Profile) profiledto.ProfileOutput {
	antecedents := p.FamilyAntecedents
	if antecedents == nil {
		antecedents = []string{}
	}
	return profiledto.ProfileOutput{
		UserID:            p.UserID,
		Saved:             p.ID != nil,
		Age:               p.Age,
		Gender:            opt.String(p.Gender, ""),
		Weight:            p.Weight,
		MeanBloodPressure: p.MeanBloodPressure,
		MeanCholesterol:   p.MeanCholesterol,
		BMI:               p.BMI,
		IsSmoking:         opt.Bool(p.IsSmoking),
		Sedentary:         opt.Bool(p.Sedentary),
		Alcohol:           opt.Bool(p.Alcohol),
		FamilyAntecedents: antecedents,
	}
}

// Apply merges input into p after validating it.
func Apply(p domain.Profile, in profiledto.ProfileInput) (domain.Profile, error) {
	if in.Age != nil {
		if *in.Age < 0 || *in.Age > 150 {
			return p, fmt.Errorf("age %d out of range: %w", *in.Age, apperrors.ErrInvalidInput)
		}
		p.Age = in.Age
	}
	if in.Gender != nil {
		g := strings.ToUpper(strings.TrimSpace(*in.Gender))
		if !domain.ValidGender(g) {
			return p, fmt.Errorf("gender %q must be one of %v: %w", *in.Gender, domain.Genders, apperrors.ErrInvalidInput)
		}
		if g == "" {
			p.Gender = nil
		} else {
			p.Gender = &g
		}
	}
	for _, f := range []struct {
		name string
		src  *float64
		dst  **float64
	}{
		{"weight", in.Weight, &p.Weight},
		{"mean blood pressure", in.MeanBloodPressure, &p.MeanBloodPressure},
		{"mean cholesterol", in.MeanCholesterol, &p.MeanCholesterol},
		{"bmi", in.BMI, &p.BMI},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return p, fmt.Errorf("%s must not be negative: %w", f.name, apperrors.ErrInvalidInput)
		}
		*f.dst = f.src
	}
	if in.IsSmoking != nil {
		p.IsSmoking = in.IsSmoking
	}
	if in.Sedentary != nil {
		p.Sedentary = in.Sedentary
	}
	if in.Alcohol != nil {
		p.Alcohol = in.Alcohol
	}
	if in.FamilyAntecedents != nil {
		p.FamilyAntecedents = domain.ParseAntecedents(*in.FamilyAntecedents)
	}
	if p.FamilyAntecedents == nil {
		p.FamilyAntecedents = []string{}
	}
	return p, nil
}
