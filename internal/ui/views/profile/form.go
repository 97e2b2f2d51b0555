package profile

import (
	"fmt"
	"strconv"
	"strings"

	profiledto "diagnocare/internal/modules/profile/dto"
	apperrors "diagnocare/internal/platform/errors"
)

const (
	fieldAge = iota
	fieldGender
	fieldWeight
	fieldBloodPressure
	fieldCholesterol
	fieldBMI
	fieldSmoking
	fieldSedentary
	fieldAlcohol
	fieldAntecedents
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Âge",
	"Sexe (MALE, FEMALE, OTHER)",
	"Poids (kg)",
	"Tension moyenne",
	"Cholestérol moyen",
	"IMC",
	"Fumeur (oui/non)",
	"Sédentaire (oui/non)",
	"Alcool (oui/non)",
	"Antécédents familiaux (séparés par des virgules)",
}

// ParseForm turns raw field text into a partial update. Blank numeric and
// yes/no fields keep the stored value.
func ParseForm(values [fieldCount]string) (profiledto.ProfileInput, error) {
	var in profiledto.ProfileInput
	if v := strings.TrimSpace(values[fieldAge]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("âge %q invalide: %w", v, apperrors.ErrInvalidInput)
		}
		in.Age = &n
	}
	gender := strings.TrimSpace(values[fieldGender])
	in.Gender = &gender

	floats := []struct {
		idx int
		dst **float64
	}{
		{fieldWeight, &in.Weight},
		{fieldBloodPressure, &in.MeanBloodPressure},
		{fieldCholesterol, &in.MeanCholesterol},
		{fieldBMI, &in.BMI},
	}
	for _, f := range floats {
		v := strings.ReplaceAll(strings.TrimSpace(values[f.idx]), ",", ".")
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("%s %q invalide: %w", strings.ToLower(fieldLabels[f.idx]), v, apperrors.ErrInvalidInput)
		}
		*f.dst = &x
	}

	bools := []struct {
		idx int
		dst **bool
	}{
		{fieldSmoking, &in.IsSmoking},
		{fieldSedentary, &in.Sedentary},
		{fieldAlcohol, &in.Alcohol},
	}
	for _, b := range bools {
		v := strings.ToLower(strings.TrimSpace(values[b.idx]))
		if v == "" {
			continue
		}
		var val bool
		switch v {
		case "oui", "o", "yes", "y", "true":
			val = true
		case "non", "n", "no", "false":
			val = false
		default:
			return in, fmt.Errorf("réponse %q invalide, attendu oui ou non: %w", v, apperrors.ErrInvalidInput)
		}
		*b.dst = &val
	}

	antecedents := values[fieldAntecedents]
	in.FamilyAntecedents = &antecedents
	return in, nil
}

// FormValues renders a stored profile back into field text.
func FormValues(p profiledto.ProfileOutput) [fieldCount]string {
	var v [fieldCount]string
	if p.Age != nil {
		v[fieldAge] = strconv.Itoa(*p.Age)
	}
	v[fieldGender] = p.Gender
	for idx, f := range map[int]*float64{
		fieldWeight:        p.Weight,
		fieldBloodPressure: p.MeanBloodPressure,
		fieldCholesterol:   p.MeanCholesterol,
		fieldBMI:           p.BMI,
	} {
		if f != nil {
			v[idx] = strconv.FormatFloat(*f, 'f', -1, 64)
		}
	}
	v[fieldSmoking] = yesNo(p.IsSmoking)
	v[fieldSedentary] = yesNo(p.Sedentary)
	v[fieldAlcohol] = yesNo(p.Alcohol)
	v[fieldAntecedents] = strings.Join(p.FamilyAntecedents, ", ")
	return v
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}
