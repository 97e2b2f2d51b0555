package domain

import (
	"sort"
	"strings"
)

type Specialist struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Specialty        string  `yaml:"specialty"`
	Address          string  `yaml:"address"`
	DistanceKM       float64 `yaml:"distance_km"`
	Rating           float64 `yaml:"rating"`
	ReviewCount      int     `yaml:"review_count"`
	NextAvailability string  `yaml:"next_availability"`
	Conventionne     bool    `yaml:"conventionne"`
	Latitude         float64 `yaml:"latitude"`
	Longitude        float64 `yaml:"longitude"`
}

type Query struct {
	Specialty string
	Text      string
}

// Match keeps entries whose specialty contains q.Specialty and whose name,
// specialty or address contains q.Text, ignoring case. Results are ordered by
// distance, then name.
func Match(all []Specialist, q Query) []Specialist {
	specialty := strings.ToLower(strings.TrimSpace(q.Specialty))
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]Specialist, 0, len(all))
	for _, s := range all {
		if specialty != "" && !strings.Contains(strings.ToLower(s.Specialty), specialty) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(s.Name), text) &&
			!strings.Contains(strings.ToLower(s.Specialty), text) &&
			!strings.Contains(strings.ToLower(s.Address), text) {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKM != out[j].DistanceKM {
			return out[i].DistanceKM < out[j].DistanceKM
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Specialties returns the distinct specialties, sorted.
func Specialties(all []Specialist) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, s := range all {
		if _, ok := seen[s.Specialty]; ok || s.Specialty == "" {
			continue
		}
		seen[s.Specialty] = struct{}{}
		out = append(out, s.Specialty)
	}
	sort.Strings(out)
	return out
}
