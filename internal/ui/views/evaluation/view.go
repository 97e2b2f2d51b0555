package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "diagnocare/internal/modules/catalog/dto"
	flowdto "diagnocare/internal/modules/flow/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	FilterSymptoms(ctx context.Context, query string) ([]catalogdto.SymptomOutput, error)
	Evaluate(ctx context.Context, input flowdto.EvaluateInput) (flowdto.EvaluateOutput, error)
	PendingCheckIn(ctx context.Context) (int64, bool)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CatalogLoadedMsg struct {
	Query    string
	Symptoms []catalogdto.SymptomOutput
	Err      error
}

type EvaluatedMsg struct {
	Out flowdto.EvaluateOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type stage int

const (
	stageSymptoms stage = iota
	stageAnalysis
)

const visibleRows = 12

type Model struct {
	port     Port
	stage    stage
	filter   textinput.Model
	symptoms []catalogdto.SymptomOutput
	cursor   int
	selected Selection
	followUp int64
	spinner  spinner.Model
	status   string
	width    int
	height   int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "Rechercher un symptôme (ex. fièvre, toux)"
	ti.Prompt = "⌕ "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, filter: ti, spinner: sp}
}

// Enter resets the page to the symptom stage and reloads the catalog.
func (m *Model) Enter() tea.Cmd {
	m.stage = stageSymptoms
	m.status = ""
	m.cursor = 0
	m.selected.Reset()
	m.filter.SetValue("")
	m.followUp, _ = m.port.PendingCheckIn(context.Background())
	return tea.Batch(m.filter.Focus(), m.filterCmd(""))
}

func (m Model) Capturing() bool { return m.stage == stageSymptoms }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CatalogLoadedMsg:
		if msg.Query != strings.TrimSpace(m.filter.Value()) {
			return m, nil
		}
		// A catalog failure leaves an empty list.
		m.symptoms = msg.Symptoms
		if msg.Err != nil {
			m.symptoms = nil
		}
		if m.cursor >= len(m.symptoms) {
			m.cursor = max(len(m.symptoms)-1, 0)
		}
		return m, nil

	case EvaluatedMsg:
		if msg.Err != nil {
			m.stage = stageSymptoms
			m.status = msg.Err.Error()
			return m, m.filter.Focus()
		}
		dest, err := nav.ParsePage(msg.Out.Destination)
		if err != nil {
			m.stage = stageSymptoms
			m.status = err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return nav.NavigateMsg{Page: dest} }

	case spinner.TickMsg:
		if m.stage == stageAnalysis {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.stage == stageAnalysis {
			return m, nil
		}
		switch msg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.symptoms)-1 {
				m.cursor++
			}
			return m, nil
		case "tab":
			if m.cursor < len(m.symptoms) {
				m.selected.Toggle(m.symptoms[m.cursor].Label)
			}
			return m, nil
		case "enter":
			if m.selected.Len() == 0 {
				m.status = "Sélectionnez au moins un symptôme."
				return m, nil
			}
			m.stage = stageAnalysis
			m.status = ""
			m.filter.Blur()
			return m, tea.Batch(m.spinner.Tick, m.evaluateCmd(m.selected.Labels()))
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.cursor = 0
		return m, tea.Batch(cmd, m.filterCmd(strings.TrimSpace(m.filter.Value())))
	}
	return m, cmd
}

func (m Model) View() string {
	if m.stage == stageAnalysis {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Analyse de vos symptômes…")
	}
	var sb strings.Builder
	title := "Nouvelle évaluation"
	if m.followUp != 0 {
		title = fmt.Sprintf("Suivi de l'évaluation #%d", m.followUp)
	}
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	sb.WriteString(m.filter.View() + "\n\n")

	start := 0
	if m.cursor >= visibleRows {
		start = m.cursor - visibleRows + 1
	}
	end := min(start+visibleRows, len(m.symptoms))
	if len(m.symptoms) == 0 {
		sb.WriteString(theme.Muted.Render("  Aucun symptôme ne correspond.") + "\n")
	}
	for i := start; i < end; i++ {
		label := m.symptoms[i].Label
		box := "[ ] "
		if m.selected.Has(label) {
			box = theme.Ok.Render("[x] ")
		}
		sb.WriteString(theme.Cursor(i, m.cursor) + box + label + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("Sélection (%d) : ", m.selected.Len())))
	sb.WriteString(strings.Join(m.selected.Labels(), ", ") + "\n")
	if m.status != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: parcourir  tab: sélectionner  enter: analyser"))
	return sb.String()
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) filterCmd(query string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.FilterSymptoms(context.Background(), query)
		return CatalogLoadedMsg{Query: query, Symptoms: items, Err: err}
	}
}

func (m Model) evaluateCmd(labels []string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Evaluate(context.Background(), flowdto.EvaluateInput{SymptomLabels: labels})
		return EvaluatedMsg{Out: out, Err: err}
	}
}
