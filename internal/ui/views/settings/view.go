package settings

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	authdto "diagnocare/internal/modules/auth/dto"
	"diagnocare/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	CurrentUser(ctx context.Context) (authdto.UserOutput, error)
	UpdateUser(ctx context.Context, input authdto.UpdateUserInput) (authdto.UserOutput, error)
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type UserLoadedMsg struct {
	User authdto.UserOutput
	Err  error
}

type LanguageChangedMsg struct {
	User authdto.UserOutput
	Err  error
}

// LoggedOutMsg tells the root model the session is gone.
type LoggedOutMsg struct {
	Deleted bool
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	user       authdto.UserOutput
	confirming bool
	status     string
	width      int
	height     int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m *Model) Enter() tea.Cmd {
	m.confirming = false
	m.status = ""
	port := m.port
	return func() tea.Msg {
		u, err := port.CurrentUser(context.Background())
		return UserLoadedMsg{User: u, Err: err}
	}
}

func (m Model) Capturing() bool { return m.confirming }

// SetLanguage asks the server to switch the account language.
func (m Model) SetLanguage(lang string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		u, err := port.UpdateUser(context.Background(), authdto.UpdateUserInput{Lang: &lang})
		return LanguageChangedMsg{User: u, Err: err}
	}
}

// Logout clears the session.
func (m Model) Logout() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		return LoggedOutMsg{Err: port.Logout(context.Background())}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case UserLoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.user = msg.User
		}

	case LanguageChangedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		} else {
			m.user = msg.User
			m.status = "Langue mise à jour."
		}

	case LoggedOutMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
		}

	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				port := m.port
				return m, func() tea.Msg {
					return LoggedOutMsg{Deleted: true, Err: port.DeleteAccount(context.Background())}
				}
			}
			m.status = "Suppression annulée."
			return m, nil
		}
		switch msg.String() {
		case "l":
			next := "en"
			if m.user.Lang == "en" {
				next = "fr"
			}
			return m, m.SetLanguage(next)
		case "o":
			return m, m.Logout()
		case "d":
			m.confirming = true
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Paramètres") + "\n\n")
	lang := m.user.Lang
	if lang == "" {
		lang = "fr"
	}
	rows := [][2]string{
		{"Nom", m.user.DisplayName},
		{"E-mail", m.user.Email},
		{"Téléphone", m.user.PhoneNumber},
		{"Langue", lang},
	}
	for _, r := range rows {
		sb.WriteString(theme.Muted.Render(padRight(r[0], 12)) + r[1] + "\n")
	}
	sb.WriteString("\n")
	if m.confirming {
		sb.WriteString(theme.Alert.Render("Supprimer définitivement votre compte ? y: confirmer, autre touche: annuler") + "\n")
	} else if m.status != "" {
		sb.WriteString(theme.Hot.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("l: changer de langue (fr/en)  o: se déconnecter  d: supprimer le compte"))
	return sb.String()
}

func padRight(s string, n int) string {
	if len([]rune(s)) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len([]rune(s)))
}
