package followup

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	checkindto "diagnocare/internal/modules/checkin/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	FollowUps(ctx context.Context) (checkindto.FollowUpsOutput, error)
	StartFollowUp(ctx context.Context, previousPredictionID int64) (string, error)
}

type LoadedMsg struct {
	Data checkindto.FollowUpsOutput
	Err  error
}

type StartedMsg struct {
	Destination string
	Err         error
}

type tab int

const (
	tabPending tab = iota
	tabCompleted
)

type Model struct {
	port   Port
	data   checkindto.FollowUpsOutput
	tab    tab
	cursor int
	status string
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m *Model) Enter() tea.Cmd {
	m.status = ""
	m.cursor = 0
	port := m.port
	return func() tea.Msg {
		data, err := port.FollowUps(context.Background())
		return LoadedMsg{Data: data, Err: err}
	}
}

func (m Model) Capturing() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		// List failures leave both tabs empty.
		m.data = msg.Data
		if msg.Err != nil {
			m.data = checkindto.FollowUpsOutput{}
		}

	case StartedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		dest, err := nav.ParsePage(msg.Destination)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return nav.NavigateMsg{Page: dest} }

	case tea.KeyMsg:
		items := m.items()
		switch msg.String() {
		case "left", "right":
			if m.tab == tabPending {
				m.tab = tabCompleted
			} else {
				m.tab = tabPending
			}
			m.cursor = 0
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "enter":
			if m.tab == tabPending && m.cursor < len(items) {
				id := items[m.cursor].PreviousPredictionID
				port := m.port
				return m, func() tea.Msg {
					dest, err := port.StartFollowUp(context.Background(), id)
					return StartedMsg{Destination: dest, Err: err}
				}
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Suivi de l'évolution") + "\n\n")
	pending := fmt.Sprintf(" À faire (%d) ", len(m.data.Pending))
	completed := fmt.Sprintf(" Terminés (%d) ", len(m.data.Completed))
	if m.tab == tabPending {
		sb.WriteString(theme.Hot.Render(pending) + theme.Muted.Render(" │ "+completed) + "\n\n")
	} else {
		sb.WriteString(theme.Muted.Render(pending+" │ ") + theme.Hot.Render(completed) + "\n\n")
	}

	items := m.items()
	if len(items) == 0 {
		sb.WriteString(theme.Muted.Render("  Rien à afficher.") + "\n")
	}
	for i, c := range items {
		line := fmt.Sprintf("Évaluation #%d  %s", c.PreviousPredictionID, c.Date)
		if m.tab == tabCompleted {
			line += "  " + evolution(c) + theme.Muted.Render("  Δ "+c.ScoreDelta)
		} else {
			line += "  " + theme.Warn.Render(c.Status)
		}
		sb.WriteString(theme.Cursor(i, m.cursor) + line + "\n")
		if m.tab == tabCompleted && c.WorseReason != "" && i == m.cursor {
			sb.WriteString(theme.Muted.Render("    "+c.WorseReason) + "\n")
		}
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("←/→: onglet  ↑/↓: parcourir  enter: démarrer le suivi"))
	return sb.String()
}

func (m Model) items() []checkindto.CheckInOutput {
	if m.tab == tabCompleted {
		return m.data.Completed
	}
	return m.data.Pending
}

func evolution(c checkindto.CheckInOutput) string {
	switch c.Evolution {
	case "better":
		return theme.Ok.Render(c.EvolutionLabel)
	case "worse":
		return theme.Hot.Render(c.EvolutionLabel)
	default:
		return theme.Warn.Render(c.EvolutionLabel)
	}
}
