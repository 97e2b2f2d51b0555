// Package nav is the page controller: it holds the current page, the
// authentication flag and the sidebar flag, and notifies subscribers after
// every change. It does not guard authenticated pages.
package nav

import (
	"fmt"
	"sync"

	apperrors "diagnocare/internal/platform/errors"
)

type Page string

const (
	Landing          Page = "landing"
	Auth             Page = "auth"
	Dashboard        Page = "dashboard"
	Evaluation       Page = "evaluation"
	Results          Page = "results"
	SpecialistFinder Page = "specialist-finder"
	FollowUp         Page = "followup"
	Timeline         Page = "timeline"
	History          Page = "history"
	Summary          Page = "summary"
	Profile          Page = "profile"
	Settings         Page = "settings"
)

// Pages lists every page in sidebar order.
var Pages = []Page{
	Landing, Auth, Dashboard, Evaluation, Results, SpecialistFinder,
	FollowUp, Timeline, History, Summary, Profile, Settings,
}

// SidebarPages are the entries of the authenticated shell's sidebar.
var SidebarPages = []Page{
	Dashboard, Evaluation, FollowUp, Timeline, History, SpecialistFinder, Profile, Settings,
}

var titles = map[Page]string{
	Landing:          "Accueil",
	Auth:             "Connexion",
	Dashboard:        "Tableau de bord",
	Evaluation:       "Évaluation",
	Results:          "Résultats",
	SpecialistFinder: "Spécialistes",
	FollowUp:         "Suivi",
	Timeline:         "Chronologie",
	History:          "Historique",
	Summary:          "Résumé",
	Profile:          "Profil médical",
	Settings:         "Paramètres",
}

func (p Page) Title() string {
	if t, ok := titles[p]; ok {
		return t
	}
	return string(p)
}

func ParsePage(raw string) (Page, error) {
	for _, p := range Pages {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q: %w", raw, apperrors.ErrInvalidInput)
}

// IsPublic reports whether p renders in the public shell.
func IsPublic(p Page) bool {
	return p == Landing || p == Auth
}

type State struct {
	Page          Page
	Authenticated bool
	SidebarOpen   bool
}

// NavigateMsg asks the root model to switch pages.
type NavigateMsg struct {
	Page Page
}

type Controller struct {
	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func NewController(authenticated bool) *Controller {
	return &Controller{state: State{Page: Landing, Authenticated: authenticated}}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Current() Page {
	return c.State().Page
}

// Subscribe registers fn; it runs synchronously after each change.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Navigate switches to p unconditionally.
func (c *Controller) Navigate(p Page) error {
	if _, err := ParsePage(string(p)); err != nil {
		return err
	}
	c.update(func(s *State) { s.Page = p })
	return nil
}

func (c *Controller) Login() {
	c.update(func(s *State) {
		s.Authenticated = true
		s.Page = Dashboard
	})
}

func (c *Controller) Logout() {
	c.update(func(s *State) {
		s.Authenticated = false
		s.Page = Landing
		s.SidebarOpen = false
	})
}

func (c *Controller) ToggleSidebar() {
	c.update(func(s *State) { s.SidebarOpen = !s.SidebarOpen })
}

func (c *Controller) CloseSidebar() {
	c.update(func(s *State) { s.SidebarOpen = false })
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	snapshot := c.state
	listeners := append([]func(State){}, c.listeners...)
	c.mu.Unlock()
	for _, l := range listeners {
		l(snapshot)
	}
}
