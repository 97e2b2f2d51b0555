package specialists

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	directorydto "diagnocare/internal/modules/directory/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	Search(ctx context.Context, input directorydto.SearchInput) ([]directorydto.SpecialistOutput, error)
	// DefaultSpecialty is the specialist of the last result, "" without one.
	DefaultSpecialty(ctx context.Context) string
}

type SpecialtyMsg struct {
	Specialty string
}

type LoadedMsg struct {
	Input directorydto.SearchInput
	Items []directorydto.SpecialistOutput
	Err   error
}

// Model lists specialists near the user. Typing filters by name, specialty
// or address; the specialty comes from the last result.
type Model struct {
	port      Port
	specialty string
	query     textinput.Model
	items     []directorydto.SpecialistOutput
	cursor    int
	err       error
	width     int
	height    int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Prompt = "⌕ "
	ti.Placeholder = "Spécialité, médecin, adresse…"
	ti.CharLimit = 64
	return Model{port: port, query: ti}
}

// Enter resolves the default specialty, then searches with query.
func (m *Model) Enter(query string) tea.Cmd {
	m.specialty = ""
	m.cursor = 0
	m.query.SetValue(query)
	port := m.port
	return tea.Batch(m.query.Focus(), func() tea.Msg {
		return SpecialtyMsg{Specialty: port.DefaultSpecialty(context.Background())}
	})
}

func (m Model) Capturing() bool { return true }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case SpecialtyMsg:
		m.specialty = msg.Specialty
		return m, m.searchCmd()
	case LoadedMsg:
		if msg.Input != m.input() {
			return m, nil
		}
		m.items = msg.Items
		m.err = msg.Err
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return nav.NavigateMsg{Page: nav.Results} }
		case "ctrl+x":
			m.specialty = ""
			return m, m.searchCmd()
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil
		}
	}
	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before {
		m.cursor = 0
		return m, tea.Batch(cmd, m.searchCmd())
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Trouver un spécialiste") + "\n\n")
	if m.specialty != "" {
		sb.WriteString(theme.Muted.Render("Spécialité : ") + theme.Hot.Render(m.specialty) + theme.Muted.Render("  (ctrl+x pour retirer)") + "\n")
	}
	sb.WriteString(m.query.View() + "\n\n")
	if m.err != nil {
		sb.WriteString(theme.Hot.Render(m.err.Error()) + "\n")
	}
	if len(m.items) == 0 {
		sb.WriteString(theme.Muted.Render("  Aucun spécialiste trouvé.") + "\n")
	}
	for i, s := range m.items {
		conv := ""
		if s.Conventionne {
			conv = theme.Ok.Render(" conventionné")
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s  %s%s\n", theme.Cursor(i, m.cursor), theme.Selected.Render(s.Name), theme.Muted.Render(s.Specialty), s.Distance, conv))
		if i == m.cursor {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("    %s\n    ★ %.1f (%d avis)  prochaine disponibilité : %s", s.Address, s.Rating, s.ReviewCount, s.NextAvailability)) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("↑/↓: parcourir  esc: retour aux résultats"))
	return sb.String()
}

func (m Model) input() directorydto.SearchInput {
	return directorydto.SearchInput{Specialty: m.specialty, Query: strings.TrimSpace(m.query.Value())}
}

func (m Model) searchCmd() tea.Cmd {
	in := m.input()
	return func() tea.Msg {
		items, err := m.port.Search(context.Background(), in)
		return LoadedMsg{Input: in, Items: items, Err: err}
	}
}
