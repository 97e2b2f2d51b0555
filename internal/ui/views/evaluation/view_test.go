package evaluation_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "diagnocare/internal/modules/catalog/dto"
	flowdto "diagnocare/internal/modules/flow/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/views/evaluation"
)

type fakePort struct {
	labels []string
	out    flowdto.EvaluateOutput
	err    error
}

func (f *fakePort) FilterSymptoms(context.Context, string) ([]catalogdto.SymptomOutput, error) {
	return []catalogdto.SymptomOutput{{ID: 1, Label: "Fièvre"}, {ID: 2, Label: "Toux"}}, nil
}

func (f *fakePort) Evaluate(_ context.Context, in flowdto.EvaluateInput) (flowdto.EvaluateOutput, error) {
	f.labels = in.SymptomLabels
	return f.out, f.err
}

func (f *fakePort) PendingCheckIn(context.Context) (int64, bool) { return 0, false }

func TestSelectionKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	var s evaluation.Selection
	s.Toggle("Toux")
	s.Toggle("Fièvre")
	s.Toggle("Fatigue")
	s.Toggle("Fièvre")
	if got := s.Labels(); !reflect.DeepEqual(got, []string{"Toux", "Fatigue"}) {
		t.Fatalf("unexpected selection %v", got)
	}
	if s.Has("Fièvre") || !s.Has("Toux") {
		t.Fatalf("unexpected membership")
	}
}

func loaded(t *testing.T, port *fakePort) evaluation.Model {
	t.Helper()
	m := evaluation.New(port)
	_ = m.Enter()
	m, _ = m.Update(evaluation.CatalogLoadedMsg{Query: "", Symptoms: []catalogdto.SymptomOutput{{ID: 1, Label: "Fièvre"}, {ID: 2, Label: "Toux"}}})
	return m
}

func TestSubmitRoutesToDestination(t *testing.T) {
	t.Parallel()
	port := &fakePort{out: flowdto.EvaluateOutput{Destination: "results"}}
	m := loaded(t, port)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Capturing() {
		t.Fatalf("expected analysis stage")
	}
	msg := findEvaluated(t, cmd)
	if !reflect.DeepEqual(port.labels, []string{"Toux"}) {
		t.Fatalf("unexpected submitted labels %v", port.labels)
	}
	_, next := m.Update(msg)
	nm, ok := next().(nav.NavigateMsg)
	if !ok || nm.Page != nav.Results {
		t.Fatalf("expected navigation to results, got %#v", nm)
	}
}

func TestFailureRevertsToSymptomStage(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakePort{})
	m, _ = m.Update(evaluation.EvaluatedMsg{Err: errors.New("Erreur API")})
	if !m.Capturing() {
		t.Fatalf("expected symptom stage after failure")
	}
}

func findEvaluated(t *testing.T, cmd tea.Cmd) evaluation.EvaluatedMsg {
	t.Helper()
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch, got %T", msg)
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if ev, ok := c().(evaluation.EvaluatedMsg); ok {
			return ev
		}
	}
	t.Fatalf("no evaluation command in batch")
	return evaluation.EvaluatedMsg{}
}
