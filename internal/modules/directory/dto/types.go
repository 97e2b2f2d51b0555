package dto

type SearchInput struct {
	Specialty string
	Query     string
}

type SpecialistOutput struct {
	ID               string
	Name             string
	Specialty        string
	Address          string
	Distance         string
	Rating           float64
	ReviewCount      int
	NextAvailability string
	Conventionne     bool
}
