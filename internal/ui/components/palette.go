package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"diagnocare/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// Command splits the input into the command word and its arguments.
func (m PaletteSubmitMsg) Command() (string, []string) {
	fields := strings.Fields(m.Input)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

type PaletteCancelMsg struct{}

type paletteEntry struct {
	name  string
	usage string
	about string
}

// entries must stay in sync with the switch in app/model.go executePalette.
var paletteEntries = []paletteEntry{
	{"goto", "<page>", "aller à une page"},
	{"sidebar", "", "afficher ou masquer le menu"},
	{"evaluate:new", "", "nouvelle évaluation"},
	{"followup:start", "<predictionId>", "démarrer un suivi"},
	{"followup:cancel", "", "annuler le suivi en attente"},
	{"history:filter", "<all|red-flags|this-month>", "filtrer l'historique"},
	{"specialists", "<recherche>", "chercher un spécialiste"},
	{"summary:download", "", "télécharger le PDF du serveur"},
	{"summary:export", "", "générer le PDF localement"},
	{"lang", "<fr|en>", "changer de langue"},
	{"auth:refresh", "", "renouveler la session"},
	{"auth:logout", "", "se déconnecter"},
	{"quit", "", "quitter"},
}

const maxSuggestions = 5

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle  = lipgloss.NewStyle().Foreground(theme.Subtext0)
	aboutStyle = lipgloss.NewStyle().Foreground(theme.Overlay0)
)

// Palette is a command overlay with prefix completion and a recall list of
// previously submitted commands.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int

	recent []string
	recall int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "commande…"
	ti.CharLimit = 256
	return Palette{input: ti, recall: -1}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = -1
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case tea.KeyEnter:
			val := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case tea.KeyTab:
			p.complete()
			return p, nil
		case tea.KeyUp:
			p.step(1)
			return p, nil
		case tea.KeyDown:
			p.step(-1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

// remember keeps the most recent distinct commands first.
func (p *Palette) remember(val string) {
	if val == "" {
		return
	}
	out := []string{val}
	for _, r := range p.recent {
		if r != val && len(out) < 20 {
			out = append(out, r)
		}
	}
	p.recent = out
}

// step moves through recent commands; 1 goes back in time.
func (p *Palette) step(dir int) {
	next := p.recall + dir
	if next < -1 || next >= len(p.recent) {
		return
	}
	p.recall = next
	if next == -1 {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.recent[next])
	p.input.CursorEnd()
}

// complete replaces the command word with the first suggestion.
func (p *Palette) complete() {
	val := p.input.Value()
	if strings.ContainsRune(strings.TrimSpace(val), ' ') {
		return
	}
	if s := suggest(val); len(s) > 0 {
		p.input.SetValue(s[0].name + " ")
		p.input.CursorEnd()
	}
}

// suggest ranks prefix matches on the command word before substring
// matches.
func suggest(input string) []paletteEntry {
	word := strings.ToLower(strings.TrimSpace(input))
	if i := strings.IndexByte(word, ' '); i >= 0 {
		word = word[:i]
	}
	if word == "" {
		return paletteEntries[:min(maxSuggestions, len(paletteEntries))]
	}
	var prefix, inner []paletteEntry
	for _, e := range paletteEntries {
		switch {
		case strings.HasPrefix(e.name, word):
			prefix = append(prefix, e)
		case strings.Contains(e.name, word):
			inner = append(inner, e)
		}
	}
	out := append(prefix, inner...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commandes") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := suggest(p.input.Value()); len(matches) > 0 {
		sb.WriteString("\n")
		for _, e := range matches {
			line := "  " + e.name
			if e.usage != "" {
				line += " " + e.usage
			}
			sb.WriteString(hintStyle.Render(line) + "  " + aboutStyle.Render(e.about) + "\n")
		}
	}
	sb.WriteString(aboutStyle.Render("tab compléter · ↑/↓ historique · esc fermer"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
