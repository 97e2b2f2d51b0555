package results

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	flowdto "diagnocare/internal/modules/flow/dto"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
)

type Port interface {
	Result(ctx context.Context) (flowdto.ResultOutput, error)
}

type LoadedMsg struct {
	Result flowdto.ResultOutput
	Err    error
}

type Model struct {
	port   Port
	result flowdto.ResultOutput
	err    error
	width  int
	height int
}

func New(port Port) Model {
	return Model{port: port}
}

func (m *Model) Enter() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		r, err := port.Result(context.Background())
		return LoadedMsg{Result: r, Err: err}
	}
}

func (m Model) Capturing() bool { return false }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.result = msg.Result
		m.err = msg.Err
	case tea.KeyMsg:
		switch msg.String() {
		case "b", "esc":
			return m, navigate(nav.Evaluation)
		case "s":
			return m, navigate(nav.SpecialistFinder)
		case "r":
			return m, navigate(nav.Summary)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Résultats de l'analyse") + "\n\n")
	r := m.result
	if !r.Available {
		sb.WriteString(theme.Muted.Render("Aucun résultat disponible. Lancez une évaluation pour obtenir une orientation.") + "\n")
		if m.err != nil {
			sb.WriteString("\n" + theme.Hot.Render(m.err.Error()) + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("b: nouvelle évaluation"))
		return sb.String()
	}
	if r.RedAlert {
		sb.WriteString(theme.Alert.Render("Signes d'alerte détectés : consultez un médecin sans attendre ou appelez le 15") + "\n\n")
	}
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Évaluation #%d du %s", r.PredictionID, r.Date)) + "\n\n")

	top := r.Top
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("%s  %d%%", top.Name, top.Confidence)) + "\n")
	sb.WriteString(bar(top.Confidence, 30) + "\n")
	sb.WriteString(theme.Muted.Render("Spécialiste recommandé : ") + top.Specialist + "\n\n")

	if len(r.Others) > 0 {
		sb.WriteString(theme.Title.Render("Autres pathologies possibles") + "\n")
		for _, o := range r.Others {
			sb.WriteString(fmt.Sprintf("  %-30s %3d%%  %s\n", o.Name, o.Confidence, theme.Muted.Render(o.Specialist)))
		}
		sb.WriteString("\n")
	}
	if len(r.Recommendations) > 0 {
		sb.WriteString(theme.Title.Render("Recommandations") + "\n")
		for _, rec := range r.Recommendations {
			sb.WriteString("  • " + rec + "\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(theme.Muted.Render("s: trouver un spécialiste  r: résumé de consultation  b: retour"))
	return sb.String()
}

func bar(pct, width int) string {
	filled := pct * width / 100
	filled = max(0, min(filled, width))
	return theme.Ok.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", width-filled))
}

func navigate(p nav.Page) tea.Cmd {
	return func() tea.Msg { return nav.NavigateMsg{Page: p} }
}
