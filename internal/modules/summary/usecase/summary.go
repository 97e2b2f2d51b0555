package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	summarydto "diagnocare/internal/modules/summary/dto"
	summaryin "diagnocare/internal/modules/summary/port/in"
	summaryout "diagnocare/internal/modules/summary/port/out"
	"diagnocare/internal/modules/summary/service"
	apperrors "diagnocare/internal/platform/errors"
)

type Interactor struct {
	gateway   summaryout.Gateway
	renderer  summaryout.PDFRenderer
	inspector summaryout.PDFInspector
	sink      summaryout.ReportSink
	log       *zap.Logger
}

func NewInteractor(
	gateway summaryout.Gateway,
	renderer summaryout.PDFRenderer,
	inspector summaryout.PDFInspector,
	sink summaryout.ReportSink,
	log *zap.Logger,
) summaryin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{gateway: gateway, renderer: renderer, inspector: inspector, sink: sink, log: log}
}

func (i *Interactor) Get(ctx context.Context, predictionID int64) (summarydto.SummaryOutput, error) {
	if err := validID(predictionID); err != nil {
		return summarydto.SummaryOutput{}, err
	}
	s, err := i.gateway.Get(ctx, predictionID)
	if err != nil {
		return summarydto.SummaryOutput{}, err
	}
	return service.ToOutput(predictionID, s), nil
}

func (i *Interactor) Timeline(ctx context.Context, predictionID int64) ([]summarydto.TimelineEventOutput, error) {
	if err := validID(predictionID); err != nil {
		return nil, err
	}
	s, err := i.gateway.Get(ctx, predictionID)
	if err != nil {
		return nil, err
	}
	return service.Timeline(s), nil
}

func (i *Interactor) DownloadPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error) {
	if err := validID(predictionID); err != nil {
		return summarydto.PDFOutput{}, err
	}
	data, err := i.gateway.PDF(ctx, predictionID)
	if err != nil {
		return summarydto.PDFOutput{}, err
	}
	return i.save(ctx, dest, service.FileName(predictionID, ""), data)
}

func (i *Interactor) ExportPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error) {
	if err := validID(predictionID); err != nil {
		return summarydto.PDFOutput{}, err
	}
	s, err := i.gateway.Get(ctx, predictionID)
	if err != nil {
		return summarydto.PDFOutput{}, err
	}
	data, err := i.renderer.Render(predictionID, s)
	if err != nil {
		return summarydto.PDFOutput{}, fmt.Errorf("render summary pdf: %w", err)
	}
	out := service.ToOutput(predictionID, s)
	return i.save(ctx, dest, service.FileName(predictionID, out.PatientName), data)
}

// ExportMarkdown saves the summary as a markdown note with YAML frontmatter.
func (i *Interactor) ExportMarkdown(ctx context.Context, predictionID int64, dest string) (summarydto.MarkdownOutput, error) {
	out, err := i.Get(ctx, predictionID)
	if err != nil {
		return summarydto.MarkdownOutput{}, err
	}
	doc, err := service.Document(out)
	if err != nil {
		return summarydto.MarkdownOutput{}, err
	}
	path, err := i.sink.Save(ctx, dest, service.MarkdownFileName(predictionID, out.PatientName), []byte(doc))
	if err != nil {
		return summarydto.MarkdownOutput{}, err
	}
	i.log.Info("summary markdown saved", zap.String("path", path))
	return summarydto.MarkdownOutput{Path: path, Bytes: len(doc)}, nil
}

func (i *Interactor) save(ctx context.Context, dest, name string, data []byte) (summarydto.PDFOutput, error) {
	pages, err := i.inspector.PageCount(data)
	if err != nil {
		return summarydto.PDFOutput{}, fmt.Errorf("summary is not a readable pdf: %v: %w", err, apperrors.ErrInvalidInput)
	}
	path, err := i.sink.Save(ctx, dest, name, data)
	if err != nil {
		return summarydto.PDFOutput{}, err
	}
	i.log.Info("summary pdf saved", zap.String("path", path), zap.Int("pages", pages))
	return summarydto.PDFOutput{Path: path, Pages: pages, Bytes: len(data)}, nil
}

func validID(predictionID int64) error {
	if predictionID <= 0 {
		return fmt.Errorf("prediction id must be positive: %w", apperrors.ErrInvalidInput)
	}
	return nil
}
