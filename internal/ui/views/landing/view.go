package landing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

// Model is the public welcome page.
type Model struct {
	width  int
	height int
}

func New() Model { return Model{} }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, func() tea.Msg { return nav.NavigateMsg{Page: nav.Auth} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("DiagnoCare") + "\n\n")
	sb.WriteString("Décrivez vos symptômes, obtenez une orientation vers le bon spécialiste\n")
	sb.WriteString("et suivez l'évolution de votre état jour après jour.\n\n")
	for _, step := range []string{
		"1. Sélectionnez vos symptômes",
		"2. Consultez les pathologies probables",
		"3. Trouvez un spécialiste proche",
		"4. Faites un suivi à 24h et 48h",
	} {
		sb.WriteString(theme.Muted.Render("  "+step) + "\n")
	}
	sb.WriteString("\n" + theme.Hot.Render("enter: commencer"))
	sb.WriteString("\n\n" + theme.Muted.Render("DiagnoCare ne remplace pas un avis médical. En cas d'urgence, appelez le 15."))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, sb.String())
}
