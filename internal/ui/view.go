// Package ui is the terminal front end: a shell model that owns the
// session and navigation state, and one view model per screen.
package ui

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/app"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"
	"github.com/boddenberg/luxe-client-go/internal/port"
	"github.com/boddenberg/luxe-client-go/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// View is one mounted screen. Init/Update/View follow Bubble Tea; ID and
// Unmount let the shell discard results addressed to a view that is gone.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
	ID() uint64
	Unmount()
}

// Deps is everything a view needs, injected by the shell.
type Deps struct {
	Auth         *service.AuthService
	Accounts     *service.AccountsService
	Transactions *service.TransactionsService
	Flash        port.Cache[string]
	FlashTTL     time.Duration
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

var lastViewID atomic.Uint64

// lifecycle gives a view its identity and a context that lives as long
// as the view is mounted.
type lifecycle struct {
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

func newLifecycle() lifecycle {
	ctx, cancel := context.WithCancel(context.Background())
	return lifecycle{id: lastViewID.Add(1), ctx: ctx, cancel: cancel}
}

func (l *lifecycle) ID() uint64 { return l.id }

// Unmount cancels every request the view still has in flight.
func (l *lifecycle) Unmount() { l.cancel() }

// ============================================================
// Messages
// ============================================================

// scoped is implemented by messages produced on behalf of one view.
type scoped interface {
	origin() uint64
}

type from struct{ view uint64 }

func (f from) origin() uint64 { return f.view }

// navigateMsg asks the shell to apply a transition.
type navigateMsg struct {
	from
	transition app.Transition
}

func navigate(view uint64, t app.Transition) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{from: from{view}, transition: t}
	}
}

// flashExpiredMsg clears the flash message of a view, unless a newer flash
// replaced it since the tick started.
type flashExpiredMsg struct {
	from
	seq int
}

func flashKey(view uint64) string {
	return "flash:" + itoa(view)
}
