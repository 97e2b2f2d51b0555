package in

import (
	"context"

	"diagnocare/internal/modules/summary/dto"
)

type Usecase interface {
	Get(ctx context.Context, predictionID int64) (dto.SummaryOutput, error)
	Timeline(ctx context.Context, predictionID int64) ([]dto.TimelineEventOutput, error)
	// DownloadPDF saves the server-rendered PDF. dest may be a directory.
	DownloadPDF(ctx context.Context, predictionID int64, dest string) (dto.PDFOutput, error)
	// ExportPDF renders the summary locally and saves it.
	ExportPDF(ctx context.Context, predictionID int64, dest string) (dto.PDFOutput, error)
	ExportMarkdown(ctx context.Context, predictionID int64, dest string) (dto.MarkdownOutput, error)
}
