package dto

type SymptomOutput struct {
	ID    int64
	Label string
}
