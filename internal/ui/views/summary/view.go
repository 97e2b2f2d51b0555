package summary

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	predictiondto "diagnocare/internal/modules/prediction/dto"
	summarydto "diagnocare/internal/modules/summary/dto"
	"diagnocare/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error)
	Get(ctx context.Context, predictionID int64) (summarydto.SummaryOutput, error)
	DownloadPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error)
	ExportPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Summary summarydto.SummaryOutput
	Found   bool
	Err     error
}

type SavedMsg struct {
	Out summarydto.PDFOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	summary  summarydto.SummaryOutput
	found    bool
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	status   string
	width    int
	height   int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	m := Model{port: port, viewport: viewport.New(0, 0), spinner: sp}
	m.setRenderer(0)
	return m
}

func (m *Model) Enter() tea.Cmd {
	m.loading = true
	m.status = ""
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		last, err := port.LastPrediction(context.Background())
		if err != nil {
			return LoadedMsg{}
		}
		s, err := port.Get(context.Background(), last.Prediction.ID)
		return LoadedMsg{Summary: s, Found: true, Err: err}
	})
}

func (m Model) Capturing() bool { return false }

// Download saves the server-rendered PDF into the data directory.
func (m Model) Download() tea.Cmd {
	return m.saveCmd(m.port.DownloadPDF)
}

// Export renders the PDF locally into the data directory.
func (m Model) Export() tea.Cmd {
	return m.saveCmd(m.port.ExportPDF)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.found {
			m.viewport.SetContent(m.render())
		}

	case LoadedMsg:
		m.loading = false
		m.found = msg.Found && msg.Err == nil
		m.summary = msg.Summary
		switch {
		case msg.Err != nil:
			m.viewport.SetContent(theme.Hot.Render("Erreur : " + msg.Err.Error()))
		case !msg.Found:
			m.viewport.SetContent(theme.Muted.Render("Aucune évaluation récente à résumer."))
		default:
			m.viewport.SetContent(m.render())
			m.viewport.GotoTop()
		}

	case SavedMsg:
		if msg.Err != nil {
			m.status = "PDF : " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("PDF enregistré : %s (%d page(s))", msg.Out.Path, msg.Out.Pages)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "d":
			if m.found {
				m.status = "Téléchargement…"
				return m, m.Download()
			}
		case "e":
			if m.found {
				m.status = "Export…"
				return m, m.Export()
			}
		}
	}

	var vCmd tea.Cmd
	m.viewport, vCmd = m.viewport.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := theme.Title.Render("Résumé de consultation")
	if m.found {
		header += theme.Muted.Render(fmt.Sprintf("  #%d  %s", m.summary.PredictionID, m.summary.GeneratedAt))
	}
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, max(m.height-2, 1), lipgloss.Center, lipgloss.Center, m.spinner.View()+" Chargement du résumé…"))
	}
	footer := theme.Muted.Render("d: télécharger le PDF  e: exporter en PDF local  ↑/↓: défiler")
	if m.status != "" {
		footer = theme.Hot.Render(m.status) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-4, 1)
	m.setRenderer(m.width)
}

// setRenderer keeps the previous renderer when glamour fails; render falls
// back to the raw markdown while none is set.
func (m *Model) setRenderer(wrap int) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return
	}
	m.renderer = r
}

func (m Model) render() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.summary.Markdown); err == nil {
			return out
		}
	}
	return m.summary.Markdown
}

func (m Model) saveCmd(save func(context.Context, int64, string) (summarydto.PDFOutput, error)) tea.Cmd {
	id := m.summary.PredictionID
	return func() tea.Msg {
		out, err := save(context.Background(), id, "")
		return SavedMsg{Out: out, Err: err}
	}
}
