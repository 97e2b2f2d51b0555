package in

import (
	"context"

	directorydto "diagnocare/internal/modules/directory/dto"
	directoryin "diagnocare/internal/modules/directory/port/in"
)

type CLIHandler struct {
	usecase directoryin.Usecase
}

func NewCLIHandler(usecase directoryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Search(ctx context.Context, specialty, query string) ([]directorydto.SpecialistOutput, error) {
	return h.usecase.Search(ctx, directorydto.SearchInput{Specialty: specialty, Query: query})
}

func (h CLIHandler) Specialties(ctx context.Context) ([]string, error) {
	return h.usecase.Specialties(ctx)
}
