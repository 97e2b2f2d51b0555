package out

import (
	"context"

	"diagnocare/internal/modules/summary/domain"
)

type Gateway interface {
	Get(ctx context.Context, predictionID int64) (domain.Summary, error)
	PDF(ctx context.Context, predictionID int64) ([]byte, error)
}

type PDFRenderer interface {
	Render(predictionID int64, summary domain.Summary) ([]byte, error)
}

// PDFInspector validates a PDF document and reports its page count.
type PDFInspector interface {
	PageCount(data []byte) (int, error)
}

type ReportSink interface {
	// Save writes data and returns the final path. When dest is a directory
	// or empty, name is used inside it.
	Save(ctx context.Context, dest, name string, data []byte) (string, error)
}
