package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error)
	Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SubmittedMsg struct {
	Register bool
	Session  authdto.SessionOutput
	Err      error
}

// LoggedInMsg tells the root model a session was opened.
type LoggedInMsg struct {
	User authdto.UserOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

const (
	fieldEmail = iota
	fieldPassword
	fieldFirstName
	fieldLastName
	fieldPhone
	fieldCount
)

var labels = [fieldCount]string{"E-mail", "Mot de passe", "Prénom", "Nom", "Téléphone"}

type Model struct {
	port    Port
	lang    string
	mode    mode
	inputs  [fieldCount]textinput.Model
	focus   int
	spinner spinner.Model
	loading bool
	status  string
	width   int
	height  int
}

func New(port Port, lang string) Model {
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		inputs[i] = ti
	}
	inputs[fieldEmail].Placeholder = "vous@exemple.fr"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldPhone].Placeholder = "facultatif"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, lang: lang, inputs: inputs, spinner: sp}
}

// Enter focuses the first field.
func (m *Model) Enter() tea.Cmd {
	m.status = ""
	m.focus = fieldEmail
	return m.refocus()
}

// Capturing is always true: every key goes to the form.
func (m Model) Capturing() bool { return true }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SubmittedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		if !msg.Session.Authenticated {
			m.mode = modeLogin
			m.focus = fieldPassword
			m.inputs[fieldPassword].SetValue("")
			m.status = "Compte créé. Connectez-vous pour continuer."
			return m, m.refocus()
		}
		m.inputs[fieldPassword].SetValue("")
		user := msg.Session.User
		return m, func() tea.Msg { return LoggedInMsg{User: user} }

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.status = ""
			m.focus = fieldEmail
			return m, m.refocus()
		case "tab", "down":
			m.focus = (m.focus + 1) % m.visibleFields()
			return m, m.refocus()
		case "shift+tab", "up":
			m.focus = (m.focus + m.visibleFields() - 1) % m.visibleFields()
			return m, m.refocus()
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := "Connexion"
	toggle := "ctrl+t: créer un compte"
	if m.mode == modeRegister {
		title = "Inscription"
		toggle = "ctrl+t: j'ai déjà un compte"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(title) + "\n\n")
	for i := 0; i < m.visibleFields(); i++ {
		label := labels[i]
		style := theme.Muted
		if i == m.focus {
			style = theme.Selected
		}
		sb.WriteString(style.Render(label) + "\n")
		sb.WriteString(m.inputs[i].View() + "\n\n")
	}
	if m.loading {
		sb.WriteString(m.spinner.View() + " Envoi…\n")
	} else if m.status != "" {
		sb.WriteString(theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("tab: champ suivant  enter: valider  "+toggle))
	form := theme.Pane.Width(min(m.width-4, 60)).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) visibleFields() int {
	if m.mode == modeRegister {
		return fieldCount
	}
	return fieldPassword + 1
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

func (m Model) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

func (m Model) submit() (Model, tea.Cmd) {
	m.loading = true
	m.status = ""
	if m.mode == modeLogin {
		input := authdto.LoginInput{Email: m.value(fieldEmail), Password: m.inputs[fieldPassword].Value()}
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			session, err := m.port.Login(context.Background(), input)
			return SubmittedMsg{Session: session, Err: err}
		})
	}
	input := authdto.RegisterInput{
		Email:       m.value(fieldEmail),
		Password:    m.inputs[fieldPassword].Value(),
		FirstName:   m.value(fieldFirstName),
		LastName:    m.value(fieldLastName),
		PhoneNumber: m.value(fieldPhone),
		Lang:        m.lang,
	}
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		session, err := m.port.Register(context.Background(), input)
		return SubmittedMsg{Register: true, Session: session, Err: err}
	})
}
