package timeline

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	predictiondto "diagnocare/internal/modules/prediction/dto"
	summarydto "diagnocare/internal/modules/summary/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error)
	Timeline(ctx context.Context, predictionID int64) ([]summarydto.TimelineEventOutput, error)
}

type LoadedMsg struct {
	PredictionID int64
	Events       []summarydto.TimelineEventOutput
	Err          error
}

type Model struct {
	port         Port
	predictionID int64
	events       []summarydto.TimelineEventOutput
	err          error
	loaded       bool
	width        int
	height       int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m *Model) Enter() tea.Cmd {
	m.loaded = false
	port := m.port
	return func() tea.Msg {
		last, err := port.LastPrediction(context.Background())
		if err != nil {
			return LoadedMsg{}
		}
		events, err := port.Timeline(context.Background(), last.Prediction.ID)
		return LoadedMsg{PredictionID: last.Prediction.ID, Events: events, Err: err}
	}
}

func (m Model) Capturing() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loaded = true
		m.predictionID = msg.PredictionID
		m.events = msg.Events
		m.err = msg.Err
	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return m, navigate(nav.Evaluation)
		case "enter":
			if m.predictionID != 0 {
				return m, navigate(nav.Results)
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Chronologie") + "\n\n")
	if !m.loaded {
		sb.WriteString(theme.Muted.Render("Chargement…"))
		return sb.String()
	}
	if m.predictionID == 0 {
		sb.WriteString(theme.Muted.Render("Aucune évaluation récente. Commencez par décrire vos symptômes.") + "\n\n")
		sb.WriteString(theme.Muted.Render("n: nouvelle évaluation"))
		return sb.String()
	}
	if m.err != nil {
		sb.WriteString(theme.Hot.Render(m.err.Error()) + "\n\n")
	}
	for i, e := range m.events {
		connector := "│"
		if i == len(m.events)-1 {
			connector = " "
		}
		head := fmt.Sprintf("● %s  %s  #%d  %d%%", e.Date, e.Type, e.PredictionID, e.Confidence)
		if e.Status != "" {
			head += "  " + status(e.Status)
		}
		sb.WriteString(head + "\n")
		sb.WriteString(theme.Muted.Render(connector+"   "+strings.Join(e.Symptoms, ", ")) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: voir les résultats  n: nouvelle évaluation"))
	return sb.String()
}

func status(s string) string {
	switch s {
	case "Amélioration":
		return theme.Ok.Render(s)
	case "Aggravation":
		return theme.Hot.Render(s)
	default:
		return theme.Warn.Render(s)
	}
}

func navigate(p nav.Page) tea.Cmd {
	return func() tea.Msg { return nav.NavigateMsg{Page: p} }
}
