package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "diagnocare/internal/modules/auth/dto"
	catalogdto "diagnocare/internal/modules/catalog/dto"
	checkindto "diagnocare/internal/modules/checkin/dto"
	directorydto "diagnocare/internal/modules/directory/dto"
	flowdto "diagnocare/internal/modules/flow/dto"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	profiledto "diagnocare/internal/modules/profile/dto"
	summarydto "diagnocare/internal/modules/summary/dto"
	"diagnocare/internal/ui/components"
	"diagnocare/internal/ui/nav"
	"diagnocare/internal/ui/theme"
	authview "diagnocare/internal/ui/views/auth"
	dashboardview "diagnocare/internal/ui/views/dashboard"
	evaluationview "diagnocare/internal/ui/views/evaluation"
	followupview "diagnocare/internal/ui/views/followup"
	historyview "diagnocare/internal/ui/views/history"
	landingview "diagnocare/internal/ui/views/landing"
	profileview "diagnocare/internal/ui/views/profile"
	resultsview "diagnocare/internal/ui/views/results"
	settingsview "diagnocare/internal/ui/views/settings"
	specialistsview "diagnocare/internal/ui/views/specialists"
	summaryview "diagnocare/internal/ui/views/summary"
	timelineview "diagnocare/internal/ui/views/timeline"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Page ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, input authdto.LoginInput) (authdto.SessionOutput, error)
	Register(ctx context.Context, input authdto.RegisterInput) (authdto.SessionOutput, error)
	Refresh(ctx context.Context) (authdto.SessionOutput, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (authdto.UserOutput, error)
	UpdateUser(ctx context.Context, input authdto.UpdateUserInput) (authdto.UserOutput, error)
	DeleteAccount(ctx context.Context) error
}

type catalogPort interface {
	FilterSymptoms(ctx context.Context, query string) ([]catalogdto.SymptomOutput, error)
}

type flowPort interface {
	Evaluate(ctx context.Context, input flowdto.EvaluateInput) (flowdto.EvaluateOutput, error)
	StartFollowUp(ctx context.Context, previousPredictionID int64) (string, error)
	PendingCheckIn(ctx context.Context) (int64, bool)
	CancelFollowUp(ctx context.Context) error
	LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error)
	Result(ctx context.Context) (flowdto.ResultOutput, error)
	Dashboard(ctx context.Context) (flowdto.DashboardOutput, error)
}

type predictionPort interface {
	History(ctx context.Context, filter predictiondto.HistoryFilter) ([]predictiondto.HistoryItemOutput, error)
}

type checkinPort interface {
	FollowUps(ctx context.Context) (checkindto.FollowUpsOutput, error)
}

type summaryPort interface {
	Get(ctx context.Context, predictionID int64) (summarydto.SummaryOutput, error)
	Timeline(ctx context.Context, predictionID int64) ([]summarydto.TimelineEventOutput, error)
	DownloadPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error)
	ExportPDF(ctx context.Context, predictionID int64, dest string) (summarydto.PDFOutput, error)
}

type profilePort interface {
	Get(ctx context.Context) (profiledto.ProfileOutput, error)
	Save(ctx context.Context, input profiledto.ProfileInput) (profiledto.ProfileOutput, error)
}

type directoryPort interface {
	Search(ctx context.Context, input directorydto.SearchInput) ([]directorydto.SpecialistOutput, error)
}

// Ports groups the use cases the TUI drives.
type Ports struct {
	Auth        authPort
	Catalog     catalogPort
	Flow        flowPort
	Predictions predictionPort
	CheckIns    checkinPort
	Summaries   summaryPort
	Profile     profilePort
	Directory   directoryPort
}

// ─── async messages ───────────────────────────────────────────────────────────

type userLoadedMsg struct {
	user authdto.UserOutput
	err  error
}

type refreshedMsg struct {
	session authdto.SessionOutput
	err     error
}

type statusMsg struct {
	text string
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Sidebar key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "page suivante")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "page précédente")),
		Sidebar: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "menu")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "aide")),
		Palette: key.NewBinding(key.WithKeys(":", "ctrl+p"), key.WithHelp(":/ctrl+p", "commandes")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quitter")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "valider")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sidebar, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Sidebar, k.Enter},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It maps the controller's current page
// to a page view, picks the public or authenticated shell and owns the help
// overlay, the sidebar and the command palette.
type Model struct {
	ctrl  *nav.Controller
	ports Ports

	landing     landingview.Model
	auth        authview.Model
	dashboard   dashboardview.Model
	evaluation  evaluationview.Model
	results     resultsview.Model
	specialists specialistsview.Model
	followup    followupview.Model
	timeline    timelineview.Model
	history     historyview.Model
	summary     summaryview.Model
	profile     profileview.Model
	settings    settingsview.Model

	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	sidebarCursor int
	user          authdto.UserOutput
	status        string
	width         int
	height        int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(ctrl *nav.Controller, lang string, ports Ports) Model {
	return Model{
		ctrl:        ctrl,
		ports:       ports,
		landing:     landingview.New(),
		auth:        authview.New(ports.Auth, lang),
		dashboard:   dashboardview.New(ports.Flow),
		evaluation:  evaluationview.New(evaluationBridge{catalog: ports.Catalog, flow: ports.Flow}),
		results:     resultsview.New(ports.Flow),
		specialists: specialistsview.New(specialistsBridge{directory: ports.Directory, flow: ports.Flow}),
		followup:    followupview.New(followupBridge{checkIns: ports.CheckIns, flow: ports.Flow}),
		timeline:    timelineview.New(timelineBridge{flow: ports.Flow, summaries: ports.Summaries}),
		history:     historyview.New(ports.Predictions),
		summary:     summaryview.New(summaryBridge{flow: ports.Flow, summaries: ports.Summaries}),
		profile:     profileview.New(ports.Profile),
		settings:    settingsview.New(ports.Auth),
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "prêt",
	}
}

func (m Model) Init() tea.Cmd {
	if !m.ctrl.State().Authenticated {
		return nil
	}
	return m.loadUserCmd()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case nav.NavigateMsg:
		return m, m.navigate(msg.Page)

	case authview.LoggedInMsg:
		m.user = msg.User
		m.ctrl.Login()
		m.status = "connecté : " + msg.User.Email
		return m, m.enter(nav.Dashboard)

	case settingsview.LoggedOutMsg:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		if msg.Err != nil {
			m.status = "déconnexion : " + msg.Err.Error()
			return m, cmd
		}
		m.user = authdto.UserOutput{}
		m.ctrl.Logout()
		m.status = "déconnecté"
		if msg.Deleted {
			m.status = "compte supprimé"
		}
		return m, cmd

	case settingsview.LanguageChangedMsg:
		if msg.Err == nil {
			m.user = msg.User
			m.status = "langue : " + msg.User.Lang
		}
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case userLoadedMsg:
		if msg.err == nil {
			m.user = msg.user
		}
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.status = "rafraîchissement : " + msg.err.Error()
		} else {
			m.user = msg.session.User
			m.status = "session rafraîchie"
		}
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case components.PaletteSubmitMsg:
		name, args := msg.Command()
		return m.executePalette(name, args)

	case components.PaletteCancelMsg:
		m.status = "prêt"
		return m, nil

	case spinner.TickMsg:
		return m, m.broadcastTick(msg)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		return m, m.updatePage(m.ctrl.Current(), msg)
	}

	if page, ok := owner(msg); ok {
		return m, m.updatePage(page, msg)
	}
	return m, m.updatePage(m.ctrl.Current(), msg)
}

// handleKey applies global bindings. Pages that capture text only yield
// ctrl-prefixed keys.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return nil, true
	}
	state := m.ctrl.State()
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "ctrl+b":
		if !nav.IsPublic(state.Page) {
			m.ctrl.ToggleSidebar()
			m.sidebarCursor = indexOf(nav.SidebarPages, state.Page)
		}
		return nil, true
	case "ctrl+p":
		return m.palette.Open(), true
	}

	if state.SidebarOpen && !nav.IsPublic(state.Page) {
		switch msg.String() {
		case "up":
			if m.sidebarCursor > 0 {
				m.sidebarCursor--
			}
			return nil, true
		case "down":
			if m.sidebarCursor < len(nav.SidebarPages)-1 {
				m.sidebarCursor++
			}
			return nil, true
		case "enter":
			return m.navigate(nav.SidebarPages[m.sidebarCursor]), true
		case "esc":
			m.ctrl.CloseSidebar()
			return nil, true
		}
	}

	if m.capturing(state.Page) {
		return nil, false
	}
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "?":
		m.showHelp = true
		return nil, true
	case ":":
		return m.palette.Open(), true
	case "tab", "shift+tab":
		if nav.IsPublic(state.Page) {
			return nil, false
		}
		step := 1
		if msg.String() == "shift+tab" {
			step = len(nav.SidebarPages) - 1
		}
		i := indexOf(nav.SidebarPages, state.Page)
		return m.navigate(nav.SidebarPages[(i+step)%len(nav.SidebarPages)]), true
	}
	return nil, false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	state := m.ctrl.State()
	header := m.renderHeader(state)
	statusBar := m.renderStatusBar(state)
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case nav.IsPublic(state.Page) || !state.SidebarOpen:
		content = m.pageView(state.Page)
	default:
		sidebar := m.renderSidebar(state, contentH)
		page := lipgloss.NewStyle().Width(m.width - lipgloss.Width(sidebar)).Render(m.pageView(state.Page))
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, page)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) pageView(p nav.Page) string {
	switch p {
	case nav.Landing:
		return m.landing.View()
	case nav.Auth:
		return m.auth.View()
	case nav.Dashboard:
		return m.dashboard.View()
	case nav.Evaluation:
		return m.evaluation.View()
	case nav.Results:
		return m.results.View()
	case nav.SpecialistFinder:
		return m.specialists.View()
	case nav.FollowUp:
		return m.followup.View()
	case nav.Timeline:
		return m.timeline.View()
	case nav.History:
		return m.history.View()
	case nav.Summary:
		return m.summary.View()
	case nav.Profile:
		return m.profile.View()
	case nav.Settings:
		return m.settings.View()
	}
	return ""
}

func (m Model) renderHeader(state nav.State) string {
	bar := theme.Hot.Render(" DiagnoCare ")
	if nav.IsPublic(state.Page) {
		return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
	}
	bar += theme.Muted.Render(" │ ") + theme.Title.Render(state.Page.Title())
	if m.user.DisplayName != "" {
		name := theme.Muted.Render(m.user.DisplayName + " ")
		gap := max(m.width-lipgloss.Width(bar)-lipgloss.Width(name), 1)
		bar += strings.Repeat(" ", gap) + name
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderSidebar(state nav.State, height int) string {
	var sb strings.Builder
	for i, p := range nav.SidebarPages {
		label := p.Title()
		switch {
		case i == m.sidebarCursor:
			sb.WriteString(theme.Selected.Render("› "+label) + "\n")
		case p == state.Page:
			sb.WriteString(theme.Hot.Render("  "+label) + "\n")
		default:
			sb.WriteString(theme.Muted.Render("  "+label) + "\n")
		}
	}
	return theme.Pane.Width(22).Height(max(height-4, 1)).Render(sb.String())
}

func (m Model) renderStatusBar(state nav.State) string {
	left := m.status
	if id, ok := m.ports.Flow.PendingCheckIn(context.Background()); ok && !nav.IsPublic(state.Page) {
		left = theme.Hot.Render("● suivi #"+strconv.FormatInt(id, 10)) + "  " + left
	}
	right := theme.Muted.Render("?:aide  ctrl+b:menu  ctrl+p:commandes  ctrl+c:quitter")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(name string, args []string) (tea.Model, tea.Cmd) {
	if name == "" {
		return m, nil
	}

	switch name {
	case "goto":
		if len(args) == 0 {
			m.status = "usage: goto <page>"
			return m, nil
		}
		p, err := nav.ParsePage(args[0])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.navigate(p)

	case "sidebar":
		m.ctrl.ToggleSidebar()
		m.sidebarCursor = indexOf(nav.SidebarPages, m.ctrl.Current())
		return m, nil

	case "evaluate:new":
		return m, m.navigate(nav.Evaluation)

	case "followup:start":
		if len(args) == 0 {
			m.status = "usage: followup:start <predictionId>"
			return m, nil
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			m.status = "identifiant invalide"
			return m, nil
		}
		flow := m.ports.Flow
		return m, func() tea.Msg {
			dest, err := flow.StartFollowUp(context.Background(), id)
			return followupview.StartedMsg{Destination: dest, Err: err}
		}

	case "followup:cancel":
		flow := m.ports.Flow
		return m, func() tea.Msg {
			if err := flow.CancelFollowUp(context.Background()); err != nil {
				return statusMsg{text: "annulation : " + err.Error()}
			}
			return statusMsg{text: "suivi annulé"}
		}

	case "history:filter":
		if len(args) == 0 {
			m.status = "usage: history:filter <all|red-flags|this-month>"
			return m, nil
		}
		m.ctrl.CloseSidebar()
		if err := m.ctrl.Navigate(nav.History); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.history.SetFilter(predictiondto.HistoryFilter(args[0]))

	case "specialists":
		query := strings.Join(args, " ")
		m.ctrl.CloseSidebar()
		if err := m.ctrl.Navigate(nav.SpecialistFinder); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.specialists.Enter(query)

	case "summary:download", "summary:export":
		if m.ctrl.Current() != nav.Summary {
			m.status = "ouvrez d'abord le résumé (goto summary)"
			return m, nil
		}
		if name == "summary:download" {
			return m, m.summary.Download()
		}
		return m, m.summary.Export()

	case "lang":
		if len(args) == 0 {
			m.status = "usage: lang <fr|en>"
			return m, nil
		}
		return m, m.settings.SetLanguage(args[0])

	case "auth:refresh":
		auth := m.ports.Auth
		return m, func() tea.Msg {
			session, err := auth.Refresh(context.Background())
			return refreshedMsg{session: session, err: err}
		}

	case "auth:logout":
		return m, m.settings.Logout()

	case "quit":
		return m, tea.Quit

	default:
		m.status = "commande inconnue : " + name
	}
	return m, nil
}

// ─── routing ─────────────────────────────────────────────────────────────────

func (m *Model) navigate(p nav.Page) tea.Cmd {
	if err := m.ctrl.Navigate(p); err != nil {
		m.status = err.Error()
		return nil
	}
	m.ctrl.CloseSidebar()
	return m.enter(p)
}

// enter runs the page's on-entry load.
func (m *Model) enter(p nav.Page) tea.Cmd {
	switch p {
	case nav.Auth:
		return m.auth.Enter()
	case nav.Dashboard:
		return m.dashboard.Enter()
	case nav.Evaluation:
		return m.evaluation.Enter()
	case nav.Results:
		return m.results.Enter()
	case nav.SpecialistFinder:
		return m.specialists.Enter("")
	case nav.FollowUp:
		return m.followup.Enter()
	case nav.Timeline:
		return m.timeline.Enter()
	case nav.History:
		return m.history.Enter()
	case nav.Summary:
		return m.summary.Enter()
	case nav.Profile:
		return m.profile.Enter()
	case nav.Settings:
		return m.settings.Enter()
	}
	return nil
}

// owner maps a page message to the page that produced it, so late replies
// update their own page even after the user moved on.
func owner(msg tea.Msg) (nav.Page, bool) {
	switch msg.(type) {
	case authview.SubmittedMsg:
		return nav.Auth, true
	case dashboardview.LoadedMsg:
		return nav.Dashboard, true
	case evaluationview.CatalogLoadedMsg, evaluationview.EvaluatedMsg:
		return nav.Evaluation, true
	case resultsview.LoadedMsg:
		return nav.Results, true
	case specialistsview.SpecialtyMsg, specialistsview.LoadedMsg:
		return nav.SpecialistFinder, true
	case followupview.LoadedMsg, followupview.StartedMsg:
		return nav.FollowUp, true
	case timelineview.LoadedMsg:
		return nav.Timeline, true
	case historyview.LoadedMsg:
		return nav.History, true
	case summaryview.LoadedMsg, summaryview.SavedMsg:
		return nav.Summary, true
	case profileview.LoadedMsg, profileview.SavedMsg:
		return nav.Profile, true
	case settingsview.UserLoadedMsg:
		return nav.Settings, true
	}
	return "", false
}

func (m *Model) updatePage(p nav.Page, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p {
	case nav.Landing:
		m.landing, cmd = m.landing.Update(msg)
	case nav.Auth:
		m.auth, cmd = m.auth.Update(msg)
	case nav.Dashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case nav.Evaluation:
		m.evaluation, cmd = m.evaluation.Update(msg)
	case nav.Results:
		m.results, cmd = m.results.Update(msg)
	case nav.SpecialistFinder:
		m.specialists, cmd = m.specialists.Update(msg)
	case nav.FollowUp:
		m.followup, cmd = m.followup.Update(msg)
	case nav.Timeline:
		m.timeline, cmd = m.timeline.Update(msg)
	case nav.History:
		m.history, cmd = m.history.Update(msg)
	case nav.Summary:
		m.summary, cmd = m.summary.Update(msg)
	case nav.Profile:
		m.profile, cmd = m.profile.Update(msg)
	case nav.Settings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return cmd
}

// broadcastTick hands spinner ticks to every page with a spinner; each
// spinner ignores ticks carrying another id.
func (m *Model) broadcastTick(msg spinner.TickMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range []nav.Page{nav.Auth, nav.Dashboard, nav.Evaluation, nav.History, nav.Summary} {
		cmds = append(cmds, m.updatePage(p, msg))
	}
	return tea.Batch(cmds...)
}

func (m Model) capturing(p nav.Page) bool {
	switch p {
	case nav.Auth:
		return m.auth.Capturing()
	case nav.Evaluation:
		return m.evaluation.Capturing()
	case nav.SpecialistFinder:
		return m.specialists.Capturing()
	case nav.Profile:
		return m.profile.Capturing()
	case nav.Settings:
		return m.settings.Capturing()
	}
	return false
}

func (m *Model) propagateSize() {
	width := m.width
	if m.ctrl.State().SidebarOpen {
		width -= 24
	}
	sz := tea.WindowSizeMsg{Width: width, Height: m.height - 4}
	for _, p := range nav.Pages {
		m.updatePage(p, sz)
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadUserCmd() tea.Cmd {
	auth := m.ports.Auth
	return func() tea.Msg {
		u, err := auth.CurrentUser(context.Background())
		return userLoadedMsg{user: u, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge combines the module ports a page needs into the page's own
// narrow interface.

type evaluationBridge struct {
	catalog catalogPort
	flow    flowPort
}

func (b evaluationBridge) FilterSymptoms(ctx context.Context, q string) ([]catalogdto.SymptomOutput, error) {
	return b.catalog.FilterSymptoms(ctx, q)
}
func (b evaluationBridge) Evaluate(ctx context.Context, in flowdto.EvaluateInput) (flowdto.EvaluateOutput, error) {
	return b.flow.Evaluate(ctx, in)
}
func (b evaluationBridge) PendingCheckIn(ctx context.Context) (int64, bool) {
	return b.flow.PendingCheckIn(ctx)
}

type specialistsBridge struct {
	directory directoryPort
	flow      flowPort
}

func (b specialistsBridge) Search(ctx context.Context, in directorydto.SearchInput) ([]directorydto.SpecialistOutput, error) {
	return b.directory.Search(ctx, in)
}
func (b specialistsBridge) DefaultSpecialty(ctx context.Context) string {
	r, err := b.flow.Result(ctx)
	if err != nil || !r.Available {
		return ""
	}
	return r.Top.Specialist
}

type followupBridge struct {
	checkIns checkinPort
	flow     flowPort
}

func (b followupBridge) FollowUps(ctx context.Context) (checkindto.FollowUpsOutput, error) {
	return b.checkIns.FollowUps(ctx)
}
func (b followupBridge) StartFollowUp(ctx context.Context, id int64) (string, error) {
	return b.flow.StartFollowUp(ctx, id)
}

type timelineBridge struct {
	flow      flowPort
	summaries summaryPort
}

func (b timelineBridge) LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error) {
	return b.flow.LastPrediction(ctx)
}
func (b timelineBridge) Timeline(ctx context.Context, id int64) ([]summarydto.TimelineEventOutput, error) {
	return b.summaries.Timeline(ctx, id)
}

type summaryBridge struct {
	flow      flowPort
	summaries summaryPort
}

func (b summaryBridge) LastPrediction(ctx context.Context) (predictiondto.PredictionWithResultsOutput, error) {
	return b.flow.LastPrediction(ctx)
}
func (b summaryBridge) Get(ctx context.Context, id int64) (summarydto.SummaryOutput, error) {
	return b.summaries.Get(ctx, id)
}
func (b summaryBridge) DownloadPDF(ctx context.Context, id int64, dest string) (summarydto.PDFOutput, error) {
	return b.summaries.DownloadPDF(ctx, id, dest)
}
func (b summaryBridge) ExportPDF(ctx context.Context, id int64, dest string) (summarydto.PDFOutput, error) {
	return b.summaries.ExportPDF(ctx, id, dest)
}

func indexOf(pages []nav.Page, p nav.Page) int {
	for i, x := range pages {
		if x == p {
			return i
		}
	}
	return 0
}
