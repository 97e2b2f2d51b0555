package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"diagnocare/internal/modules/summary/domain"
	"diagnocare/internal/modules/summary/usecase"
	apperrors "diagnocare/internal/platform/errors"
)

type fakeGateway struct {
	summary domain.Summary
	pdf     []byte
	err     error
	calls   int
}

func (f *fakeGateway) Get(context.Context, int64) (domain.Summary, error) {
	f.calls++
	return f.summary, f.err
}

func (f *fakeGateway) PDF(context.Context, int64) ([]byte, error) {
	f.calls++
	return f.pdf, f.err
}

type fakeRenderer struct{ out []byte }

func (f fakeRenderer) Render(int64, domain.Summary) ([]byte, error) { return f.out, nil }

type fakeInspector struct{ pages int }

func (f fakeInspector) PageCount(data []byte) (int, error) {
	if !strings.HasPrefix(string(data), "%PDF") {
		return 0, errors.New("missing header")
	}
	return f.pages, nil
}

type savedFile struct {
	dest, name string
	data       []byte
}

type fakeSink struct{ saved []savedFile }

func (f *fakeSink) Save(_ context.Context, dest, name string, data []byte) (string, error) {
	f.saved = append(f.saved, savedFile{dest: dest, name: name, data: data})
	return filepath.Join("/reports", name), nil
}

func str(s string) *string { return &s }

func TestRejectsNonPositiveIDsWithoutCallingServer(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{}
	uc := usecase.NewInteractor(gw, fakeRenderer{}, fakeInspector{}, &fakeSink{}, nil)
	ctx := context.Background()

	if _, err := uc.Get(ctx, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Timeline(ctx, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.DownloadPDF(ctx, 0, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called, got %d calls", gw.calls)
	}
}

func TestDownloadPDFValidatesBeforeSaving(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	gw := &fakeGateway{pdf: []byte("<html>oops</html>")}
	uc := usecase.NewInteractor(gw, fakeRenderer{}, fakeInspector{pages: 2}, sink, nil)

	if _, err := uc.DownloadPDF(context.Background(), 3, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for a non-pdf body, got %v", err)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("nothing should be saved, got %+v", sink.saved)
	}

	gw.pdf = []byte("%PDF-1.4 body")
	out, err := uc.DownloadPDF(context.Background(), 3, "out")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if out.Pages != 2 || out.Bytes != len(gw.pdf) || out.Path != "/reports/diagnocare-summary-3.pdf" {
		t.Fatalf("unexpected output %+v", out)
	}
	if sink.saved[0].dest != "out" {
		t.Fatalf("destination must be passed through, got %+v", sink.saved[0])
	}
}

func TestExportsNameFilesAfterPatient(t *testing.T) {
	t.Parallel()
	sink := &fakeSink{}
	gw := &fakeGateway{summary: domain.Summary{PatientName: str("Ana Diallo")}}
	uc := usecase.NewInteractor(gw, fakeRenderer{out: []byte("%PDF-1.3")}, fakeInspector{pages: 1}, sink, nil)
	ctx := context.Background()

	pdf, err := uc.ExportPDF(ctx, 9, "")
	if err != nil {
		t.Fatalf("export pdf: %v", err)
	}
	if filepath.Base(pdf.Path) != "diagnocare-summary-9-ana-diallo.pdf" {
		t.Fatalf("unexpected pdf path %s", pdf.Path)
	}

	note, err := uc.ExportMarkdown(ctx, 9, "")
	if err != nil {
		t.Fatalf("export markdown: %v", err)
	}
	if filepath.Base(note.Path) != "diagnocare-summary-9-ana-diallo.md" {
		t.Fatalf("unexpected note path %s", note.Path)
	}
	body := string(sink.saved[1].data)
	if !strings.HasPrefix(body, "---\n") || !strings.Contains(body, "patient: Ana Diallo") {
		t.Fatalf("expected frontmatter in note:\n%s", body)
	}
}

func TestGatewayErrorsPropagate(t *testing.T) {
	t.Parallel()
	gw := &fakeGateway{err: apperrors.ErrNotFound}
	uc := usecase.NewInteractor(gw, fakeRenderer{}, fakeInspector{}, &fakeSink{}, nil)
	if _, err := uc.ExportMarkdown(context.Background(), 5, ""); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
