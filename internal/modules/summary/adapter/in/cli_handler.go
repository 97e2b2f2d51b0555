package in

import (
	"context"

	summarydto "diagnocare/internal/modules/summary/dto"
	summaryin "diagnocare/internal/modules/summary/port/in"
)

type CLIHandler struct {
	usecase summaryin.Usecase
}

func NewCLIHandler(usecase summaryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, predictionID int64) (summarydto.SummaryOutput, error) {
	return h.usecase.Get(ctx, predictionID)
}

func (h CLIHandler) Timeline(ctx context.Context, predictionID int64) ([]summarydto.TimelineEventOutput, error) {
	return h.usecase.Timeline(ctx, predictionID)
}

func (h CLIHandler) DownloadPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error) {
	return h.usecase.DownloadPDF(ctx, predictionID, dest)
}

func (h CLIHandler) ExportPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error) {
	return h.usecase.ExportPDF(ctx, predictionID, dest)
}

func (h CLIHandler) ExportMarkdown(ctx context.Context, predictionID int64, dest string) (summarydto.MarkdownOutput, error) {
	return h.usecase.ExportMarkdown(ctx, predictionID, dest)
}
