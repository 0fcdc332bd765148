package ui

import (
	"strings"

	"github.com/boddenberg/luxe-client-go/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Shell is the root model. It owns the session and navigation state and
// mounts exactly one view at a time.
type Shell struct {
	deps   Deps
	state  app.State
	active View
}

// NewShell restores the persisted session, if any, and mounts the
// matching view.
func NewShell(deps Deps) *Shell {
	s := &Shell{
		deps:  deps,
		state: app.Initial(deps.Auth.Restore()).Resolve(),
	}
	s.active = s.mount()
	return s
}

// State returns the current navigation state.
func (s *Shell) State() app.State {
	return s.state
}

func (s *Shell) Init() tea.Cmd {
	return s.active.Init()
}

func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if t, ok := s.globalKey(msg); ok {
			return s, s.navigate(t)
		}
		if msg.String() == "ctrl+c" {
			s.active.Unmount()
			return s, tea.Quit
		}
	case navigateMsg:
		if msg.origin() != s.active.ID() {
			return s, nil
		}
		return s, s.navigate(msg.transition)
	case scoped:
		if msg.origin() != s.active.ID() {
			s.deps.Logger.Debug("dropping result for unmounted view", zap.Uint64("view_id", msg.origin()))
			return s, nil
		}
	}

	next, cmd := s.active.Update(msg)
	s.active = next
	return s, cmd
}

// globalKey maps the navigation bar shortcuts to transitions.
func (s *Shell) globalKey(msg tea.KeyMsg) (app.Transition, bool) {
	if s.state.SignedIn() {
		switch msg.String() {
		case "ctrl+g":
			return app.Transition{Event: app.EventShowAccounts}, true
		case "ctrl+x":
			return app.Transition{Event: app.EventLogout}, true
		}
		return app.Transition{}, false
	}
	switch msg.String() {
	case "ctrl+l":
		return app.Transition{Event: app.EventShowLogin}, true
	case "ctrl+r":
		return app.Transition{Event: app.EventShowRegister}, true
	}
	return app.Transition{}, false
}

// navigate applies t, updates the session record and remounts the active
// view when the resulting state differs.
func (s *Shell) navigate(t app.Transition) tea.Cmd {
	next := s.state.Apply(t)

	switch t.Event {
	case app.EventLoggedIn:
		if next.User != nil {
			s.deps.Auth.StartSession(next.User)
		}
	case app.EventLogout:
		// The in-memory session ends even if the record cannot be removed.
		_ = s.deps.Auth.EndSession()
	}

	if next.Same(s.state) {
		s.state = next
		return nil
	}

	s.deps.Logger.Debug("navigating",
		zap.Stringer("event", t.Event),
		zap.Stringer("from", s.state.View),
		zap.Stringer("to", next.View),
	)
	s.state = next
	s.active.Unmount()
	s.active = s.mount()
	return s.active.Init()
}

func (s *Shell) mount() View {
	s.deps.Metrics.IncrViewMount(s.state.View.String())

	switch s.state.View {
	case app.ViewRegister:
		return newRegisterView(s.deps)
	case app.ViewAccounts:
		return newAccountsView(s.deps, *s.state.User)
	case app.ViewAccount:
		return newDetailView(s.deps, *s.state.User, *s.state.SelectedAccount)
	default:
		return newLoginView(s.deps)
	}
}

func (s *Shell) View() string {
	var b strings.Builder
	b.WriteString(s.nav())
	b.WriteString("\n\n")
	b.WriteString(s.active.View())
	b.WriteString("\n")
	return b.String()
}

func (s *Shell) nav() string {
	var b strings.Builder
	b.WriteString(navStyle.Render("Luxe"))
	b.WriteString("  ")
	if s.state.SignedIn() {
		b.WriteString("My Accounts (ctrl+g) • Sign Out (ctrl+x)")
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(s.state.User.DisplayName()))
	} else {
		b.WriteString("Login (ctrl+l) • Register (ctrl+r)")
	}
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render("ctrl+c: quit"))
	return b.String()
}
