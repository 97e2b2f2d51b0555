package profile

import (
	"errors"
	"testing"

	profiledto "diagnocare/internal/modules/profile/dto"
	apperrors "diagnocare/internal/platform/errors"
)

func TestParseFormKeepsBlankFieldsAndParsesAnswers(t *testing.T) {
	t.Parallel()
	var values [fieldCount]string
	values[fieldAge] = " 42 "
	values[fieldWeight] = "71,5"
	values[fieldSmoking] = "Oui"
	values[fieldAntecedents] = "diabète, , hypertension"

	in, err := ParseForm(values)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Age == nil || *in.Age != 42 {
		t.Fatalf("unexpected age %v", in.Age)
	}
	if in.Weight == nil || *in.Weight != 71.5 {
		t.Fatalf("unexpected weight %v", in.Weight)
	}
	if in.IsSmoking == nil || !*in.IsSmoking || in.Sedentary != nil {
		t.Fatalf("unexpected answers smoking=%v sedentary=%v", in.IsSmoking, in.Sedentary)
	}
	if in.BMI != nil {
		t.Fatalf("blank bmi must keep stored value")
	}
	if in.FamilyAntecedents == nil || *in.FamilyAntecedents != "diabète, , hypertension" {
		t.Fatalf("unexpected antecedents %v", in.FamilyAntecedents)
	}
}

func TestParseFormRejectsGarbage(t *testing.T) {
	t.Parallel()
	var values [fieldCount]string
	values[fieldAlcohol] = "parfois"
	if _, err := ParseForm(values); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	values[fieldAlcohol] = ""
	values[fieldAge] = "quarante"
	if _, err := ParseForm(values); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestFormValuesRoundTrip(t *testing.T) {
	t.Parallel()
	age := 30
	bmi := 22.5
	values := FormValues(profiledto.ProfileOutput{Age: &age, BMI: &bmi, Alcohol: true, FamilyAntecedents: []string{"asthme", "diabète"}})
	if values[fieldAge] != "30" || values[fieldBMI] != "22.5" || values[fieldAlcohol] != "oui" || values[fieldSmoking] != "non" {
		t.Fatalf("unexpected values %q", values)
	}
	if values[fieldAntecedents] != "asthme, diabète" {
		t.Fatalf("unexpected antecedents %q", values[fieldAntecedents])
	}
}
