package service

import (
	"strconv"

	"diagnocare/internal/modules/directory/domain"
	directorydto "diagnocare/internal/modules/directory/dto"
)

func ToOutput(s domain.Specialist) directorydto.SpecialistOutput {
	return directorydto.SpecialistOutput{
		ID:               s.ID,
		Name:             s.Name,
		Specialty:        s.Specialty,
		Address:          s.Address,
		Distance:         FormatDistance(s.DistanceKM),
		Rating:           s.Rating,
		ReviewCount:      s.ReviewCount,
		NextAvailability: s.NextAvailability,
		Conventionne:     s.Conventionne,
	}
}

// FormatDistance renders kilometres with one decimal, e.g. "0.8 km".
func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64) + " km"
}
