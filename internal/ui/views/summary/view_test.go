package summary

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	summarydto "diagnocare/internal/modules/summary/dto"
)

func TestRendererSurvivesResize(t *testing.T) {
	t.Parallel()
	m := New(nil)
	if m.renderer == nil {
		t.Fatalf("expected a markdown renderer after New")
	}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if m.renderer == nil {
		t.Fatalf("expected the renderer to be kept after resize")
	}
	m, _ = m.Update(LoadedMsg{Found: true, Summary: summarydto.SummaryOutput{PredictionID: 3, Markdown: "## Suivi\n\nStatut terminé"}})
	if !strings.Contains(m.View(), "Suivi") {
		t.Fatalf("expected rendered summary in view, got %q", m.View())
	}
}

func TestRenderFallsBackToRawMarkdown(t *testing.T) {
	t.Parallel()
	m := Model{summary: summarydto.SummaryOutput{Markdown: "# Résumé"}}
	if got := m.render(); got != "# Résumé" {
		t.Fatalf("expected raw markdown without a renderer, got %q", got)
	}
}
