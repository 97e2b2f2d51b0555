package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	summaryout "diagnocare/internal/modules/summary/adapter/out"
	"diagnocare/internal/modules/summary/domain"
)

func TestRenderedSummaryIsReadableAndSavedIntoDirectory(t *testing.T) {
	t.Parallel()
	name := "Ana Diallo"
	data, err := summaryout.NewGofpdfRenderer().Render(5, domain.Summary{
		PatientName: &name,
		Symptoms:    []string{"Fièvre"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	inspector := summaryout.NewPDFInspector()
	pages, err := inspector.PageCount(data)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if pages != 1 {
		t.Fatalf("expected 1 page, got %d", pages)
	}
	text, err := inspector.PageText(data, 1)
	if err != nil {
		t.Fatalf("page text: %v", err)
	}
	// Extracted text carries no word spacing.
	compact := strings.Join(strings.Fields(text), "")
	if !strings.Contains(compact, "DiagnoCare") || !strings.Contains(compact, "AnaDiallo") {
		t.Fatalf("unexpected page text %q", text)
	}

	dir := t.TempDir()
	path, err := summaryout.NewFileSink(dir).Save(context.Background(), "", "report.pdf", data)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join(dir, "report.pdf") {
		t.Fatalf("unexpected path %s", path)
	}
	if raw, err := os.ReadFile(path); err != nil || len(raw) != len(data) {
		t.Fatalf("saved file mismatch: %v", err)
	}
}

func TestInspectorRejectsNonPDF(t *testing.T) {
	t.Parallel()
	if _, err := summaryout.NewPDFInspector().PageCount([]byte("<html>nope</html>")); err == nil {
		t.Fatalf("expected error for non-pdf input")
	}
}
