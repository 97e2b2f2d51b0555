package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	predictiondto "diagnocare/internal/modules/prediction/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	History(ctx context.Context, filter predictiondto.HistoryFilter) ([]predictiondto.HistoryItemOutput, error)
}

type LoadedMsg struct {
	Filter predictiondto.HistoryFilter
	Items  []predictiondto.HistoryItemOutput
	Err    error
}

var filters = []struct {
	value predictiondto.HistoryFilter
	label string
}{
	{predictiondto.HistoryAll, "Tout"},
	{predictiondto.HistoryRedFlags, "Alertes"},
	{predictiondto.HistoryThisMonth, "Ce mois-ci"},
}

type Model struct {
	port    Port
	filter  predictiondto.HistoryFilter
	items   []predictiondto.HistoryItemOutput
	cursor  int
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, filter: predictiondto.HistoryAll, spinner: sp}
}

func (m *Model) Enter() tea.Cmd {
	return m.SetFilter(m.filter)
}

// SetFilter reloads the history with f.
func (m *Model) SetFilter(f predictiondto.HistoryFilter) tea.Cmd {
	m.filter = f
	m.cursor = 0
	m.loading = true
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		items, err := port.History(context.Background(), f)
		return LoadedMsg{Filter: f, Items: items, Err: err}
	})
}

func (m Model) Capturing() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		if msg.Filter != m.filter {
			return m, nil
		}
		m.loading = false
		m.items = msg.Items
		if msg.Err != nil {
			m.items = nil
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "1", "2", "3":
			idx := int(msg.String()[0] - '1')
			return m, m.SetFilter(filters[idx].value)
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.items) > 0 {
				return m, func() tea.Msg { return nav.NavigateMsg{Page: nav.Results} }
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Historique") + "\n\n")
	for i, f := range filters {
		label := fmt.Sprintf(" %d:%s ", i+1, f.label)
		if f.value == m.filter {
			sb.WriteString(theme.Hot.Render(label))
		} else {
			sb.WriteString(theme.Muted.Render(label))
		}
	}
	sb.WriteString("\n\n")
	if m.loading {
		sb.WriteString(m.spinner.View() + " Chargement…\n")
		return sb.String()
	}
	if len(m.items) == 0 {
		sb.WriteString(theme.Muted.Render("  Aucune évaluation.") + "\n")
	}
	for i, it := range m.items {
		flag := "  "
		if it.RedFlag {
			flag = theme.Hot.Render("! ")
		}
		sb.WriteString(fmt.Sprintf("%s%s%s  %-8s %-28s %3d%%  %s\n",
			theme.Cursor(i, m.cursor), flag, it.Date, it.Type, it.Pathology, it.Confidence, theme.Muted.Render(it.Specialist)))
	}
	sb.WriteString("\n" + theme.Muted.Render("1-3: filtre  ↑/↓: parcourir  enter: résultats"))
	return sb.String()
}
