package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	flowdto "diagnocare/internal/modules/flow/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	Dashboard(ctx context.Context) (flowdto.DashboardOutput, error)
}

type LoadedMsg struct {
	Data flowdto.DashboardOutput
	Err  error
}

type Model struct {
	port    Port
	data    flowdto.DashboardOutput
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp}
}

func (m *Model) Enter() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Capturing() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Data
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return m, navigate(nav.Evaluation)
		case "f":
			return m, navigate(nav.FollowUp)
		case "h":
			return m, navigate(nav.History)
		case "r":
			return m, m.Enter()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Chargement du tableau de bord…")
	}
	d := m.data
	var sb strings.Builder
	greeting := "Bonjour"
	if d.UserName != "" {
		greeting += " " + d.UserName
	}
	sb.WriteString(theme.Title.Render(greeting) + "\n\n")
	if m.err != nil {
		sb.WriteString(theme.Hot.Render(m.err.Error()) + "\n\n")
	}
	if d.HasRedFlag {
		sb.WriteString(theme.Alert.Render(fmt.Sprintf("%d alerte(s) active(s) : consultez rapidement un médecin", d.ActiveAlerts)) + "\n\n")
	}

	cards := []string{
		card("Évaluations", fmt.Sprintf("%d", d.TotalEvaluations)),
		card("Suivis en attente", fmt.Sprintf("%d", d.PendingFollowUps)),
		card("Prochain suivi", d.NextFollowUp),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	sb.WriteString(theme.Title.Render("Évaluations récentes") + "\n")
	if len(d.Recent) == 0 {
		sb.WriteString(theme.Muted.Render("  Aucune évaluation pour le moment.") + "\n")
	}
	for _, r := range d.Recent {
		line := fmt.Sprintf("  %s  %-28s %3d%%", r.Date, r.Result, r.Confidence)
		if r.Urgent {
			line += "  " + theme.Hot.Render("urgent")
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("n: nouvelle évaluation  f: suivis  h: historique  r: actualiser"))
	return sb.String()
}

func card(label, value string) string {
	body := theme.Muted.Render(label) + "\n" + theme.Hot.Render(value)
	return theme.Pane.Width(22).MarginRight(1).Render(body)
}

func navigate(p nav.Page) tea.Cmd {
	return func() tea.Msg { return nav.NavigateMsg{Page: p} }
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		data, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Data: data, Err: err}
	}
}
