// Package app holds the client's navigation state machine: who is signed
// in, which view is active and which account is selected.
package app

import "github.com/boddenberg/luxe-client-go/internal/domain"

// View identifies one of the screens the shell can mount.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewAccounts
	ViewAccount
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewAccounts:
		return "accounts"
	case ViewAccount:
		return "account"
	default:
		return "unknown"
	}
}

// Event is a navigation request raised by a view or the navigation bar.
type Event int

const (
	EventLoggedIn Event = iota + 1
	EventOpenAccount
	EventBack
	EventLogout
	EventShowRegister
	EventShowLogin
	EventShowAccounts
)

func (e Event) String() string {
	switch e {
	case EventLoggedIn:
		return "logged_in"
	case EventOpenAccount:
		return "open_account"
	case EventBack:
		return "back"
	case EventLogout:
		return "logout"
	case EventShowRegister:
		return "show_register"
	case EventShowLogin:
		return "show_login"
	case EventShowAccounts:
		return "show_accounts"
	default:
		return "unknown"
	}
}

// Transition carries an event and its payload. User is set for
// EventLoggedIn, Account for EventOpenAccount.
type Transition struct {
	Event   Event
	User    *domain.User
	Account *domain.Account
}

// State is the shell's session and navigation state. It is a value;
// Apply returns a new State.
type State struct {
	User            *domain.User
	View            View
	SelectedAccount *domain.Account
}

// Initial returns the start state for a restored user, or the login
// screen when user is nil.
func Initial(user *domain.User) State {
	if user != nil {
		return State{User: user, View: ViewAccounts}
	}
	return State{View: ViewLogin}
}

// SignedIn reports whether a user is held.
func (s State) SignedIn() bool {
	return s.User != nil
}

// Apply returns the state after t. Events that make no sense in the
// current state leave it unchanged.
func (s State) Apply(t Transition) State {
	next := s
	switch t.Event {
	case EventLoggedIn:
		if t.User == nil {
			return s
		}
		next = State{User: t.User, View: ViewAccounts}
	case EventOpenAccount:
		if s.User == nil || t.Account == nil {
			return s
		}
		next.View = ViewAccount
		next.SelectedAccount = t.Account
	case EventBack, EventShowAccounts:
		if s.User == nil {
			return s
		}
		next.View = ViewAccounts
		next.SelectedAccount = nil
	case EventLogout:
		next = State{View: ViewLogin}
	case EventShowRegister:
		next.View = ViewRegister
	case EventShowLogin:
		next.View = ViewLogin
	}
	return next.Resolve()
}

// Resolve maps combinations that have no view to render onto a screen
// that does, so the shell never shows an empty frame.
func (s State) Resolve() State {
	switch s.View {
	case ViewAccount:
		if s.User == nil {
			return State{View: ViewLogin}
		}
		if s.SelectedAccount == nil {
			s.View = ViewAccounts
		}
	case ViewAccounts:
		if s.User == nil {
			return State{View: ViewLogin}
		}
		s.SelectedAccount = nil
	case ViewLogin, ViewRegister:
		if s.User != nil {
			s.View = ViewAccounts
			s.SelectedAccount = nil
		}
	default:
		if s.User != nil {
			return State{User: s.User, View: ViewAccounts}
		}
		return State{View: ViewLogin}
	}
	return s
}

// Same reports whether two states would mount the same view with the
// same inputs.
func (s State) Same(o State) bool {
	return s.View == o.View && sameUser(s.User, o.User) && sameAccount(s.SelectedAccount, o.SelectedAccount)
}

func sameUser(a, b *domain.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

func sameAccount(a, b *domain.Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
