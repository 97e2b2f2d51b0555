package profile

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	profiledto "diagnocare/internal/modules/profile/dto"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	Get(ctx context.Context) (profiledto.ProfileOutput, error)
	Save(ctx context.Context, input profiledto.ProfileInput) (profiledto.ProfileOutput, error)
}

type LoadedMsg struct {
	Profile profiledto.ProfileOutput
	Err     error
}

type SavedMsg struct {
	Profile profiledto.ProfileOutput
	Err     error
}

type Model struct {
	port   Port
	inputs [fieldCount]textinput.Model
	focus  int
	status string
	saving bool
	width  int
	height int
}

func New(port Port) Model {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		inputs[i] = ti
	}
	return Model{port: port, inputs: inputs}
}

func (m *Model) Enter() tea.Cmd {
	m.status = ""
	m.focus = 0
	port := m.port
	return tea.Batch(m.refocus(), func() tea.Msg {
		p, err := port.Get(context.Background())
		return LoadedMsg{Profile: p, Err: err}
	})
}

func (m Model) Capturing() bool { return true }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case LoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.fill(msg.Profile)
		return m, nil

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.fill(msg.Profile)
		m.status = "Profil enregistré."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
			return m, m.refocus()
		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			return m, m.refocus()
		case "enter":
			if m.saving {
				return m, nil
			}
			var values [fieldCount]string
			for i := range m.inputs {
				values[i] = m.inputs[i].Value()
			}
			input, err := ParseForm(values)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.saving = true
			m.status = "Enregistrement…"
			port := m.port
			return m, func() tea.Msg {
				p, err := port.Save(context.Background(), input)
				return SavedMsg{Profile: p, Err: err}
			}
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Profil médical") + "\n")
	sb.WriteString(theme.Muted.Render("Ces informations affinent l'analyse de vos symptômes.") + "\n\n")
	for i := range m.inputs {
		style := theme.Muted
		if i == m.focus {
			style = theme.Selected
		}
		sb.WriteString(style.Render(fieldLabels[i]) + "  " + m.inputs[i].View() + "\n")
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("tab/↑/↓: champ  enter: enregistrer"))
	return sb.String()
}

func (m *Model) fill(p profiledto.ProfileOutput) {
	values := FormValues(p)
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
	}
}

func (m *Model) refocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}
