package domain

import "strings"

type Symptom struct {
	ID             int64  `json:"id"`
	Label          string `json:"label"`
	SymptomLabelID *int64 `json:"symptomLabelId,omitempty"`
}

// Filter keeps symptoms whose label contains query, ignoring case. An empty
// query keeps everything.
func Filter(symptoms []Symptom, query string) []Symptom {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Symptom(nil), symptoms...)
	}
	out := make([]Symptom, 0, len(symptoms))
	for _, s := range symptoms {
		if strings.Contains(strings.ToLower(s.Label), q) {
			out = append(out, s)
		}
	}
	return out
}
