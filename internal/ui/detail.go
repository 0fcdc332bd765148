package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/boddenberg/luxe-client-go/internal/app"
	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/resilience"

	tea "github.com/charmbracelet/bubbletea"
)

type movementKind int

const (
	movementDeposit movementKind = iota
	movementWithdraw
	movementTransfer
)

func (k movementKind) confirmation() string {
	switch k {
	case movementWithdraw:
		return "Withdrawal successful."
	case movementTransfer:
		return "Transfer successful."
	default:
		return "Deposit successful."
	}
}

type detailLoadedMsg struct {
	from
	detail *domain.AccountDetail
	err    error
}

// movementDoneMsg reports a submitted movement and the refreshed detail.
// err is the submission error; loadErr is set when only the refresh failed.
type movementDoneMsg struct {
	from
	kind    movementKind
	detail  *domain.AccountDetail
	err     error
	loadErr error
}

type detailView struct {
	lifecycle
	deps Deps
	user domain.User

	account domain.Account
	txs     []domain.Transaction
	status  loadStatus
	loadErr string

	form form
	// lock is held while a deposit, withdrawal or transfer is in flight.
	lock *resilience.Bulkhead
	fb   feedback
}

func newDetailView(deps Deps, user domain.User, account domain.Account) *detailView {
	return &detailView{
		lifecycle: newLifecycle(),
		deps:      deps,
		user:      user,
		account:   account,
		form: newForm(
			newField("amount", "Amount", "0.00", false),
			newField("description", "Description", "", false),
			newField("toAccount", "To account id (transfers)", "", false),
		),
		lock: resilience.NewBulkhead(1),
	}
}

func (v *detailView) Init() tea.Cmd {
	ctx, id, svc, account := v.ctx, v.id, v.deps.Transactions, v.account
	return func() tea.Msg {
		detail, err := svc.Load(ctx, account)
		return detailLoadedMsg{from: from{id}, detail: detail, err: err}
	}
}

func (v *detailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case detailLoadedMsg:
		if msg.err != nil {
			if domain.IsCanceled(msg.err) {
				return v, nil
			}
			v.status = statusFailed
			v.loadErr = domain.DisplayMessage(msg.err)
			return v, nil
		}
		v.apply(msg.detail)
		return v, nil

	case movementDoneMsg:
		v.lock.Release()
		if msg.err != nil {
			if !domain.IsCanceled(msg.err) {
				v.fb.fail(msg.err)
			}
			return v, nil
		}
		v.fb.success = msg.kind.confirmation()
		v.form.reset("amount", "description", "toAccount")
		if msg.loadErr != nil && !domain.IsCanceled(msg.loadErr) {
			v.fb.err = domain.DisplayMessage(msg.loadErr)
		}
		if msg.detail != nil {
			v.apply(msg.detail)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+d":
			return v, v.submit(movementDeposit)
		case "ctrl+w":
			return v, v.submit(movementWithdraw)
		case "ctrl+t":
			return v, v.submit(movementTransfer)
		case "esc":
			return v, navigate(v.id, app.Transition{Event: app.EventBack})
		}
		// Fields are frozen until the movement settles.
		if v.pending() {
			return v, nil
		}
		if v.form.focusKey(msg) {
			return v, nil
		}
	}
	return v, v.form.update(msg)
}

func (v *detailView) apply(detail *domain.AccountDetail) {
	v.status = statusLoaded
	v.loadErr = ""
	v.account = detail.Account
	v.txs = detail.Transactions
}

// submit validates the shared fields and dispatches one movement. Only one
// movement may be in flight; a second submit is rejected without a request.
func (v *detailView) submit(kind movementKind) tea.Cmd {
	if !v.lock.TryAcquire() {
		return nil
	}
	v.fb.clear()

	f := domain.MovementForm{
		Amount:      v.form.value("amount"),
		Description: v.form.value("description"),
		ToAccount:   v.form.value("toAccount"),
	}
	send, err := v.movement(kind, f)
	if err != nil {
		v.lock.Release()
		v.fb.fail(err)
		return nil
	}

	ctx, id, svc, account := v.ctx, v.id, v.deps.Transactions, v.account
	return func() tea.Msg {
		if err := send(ctx); err != nil {
			return movementDoneMsg{from: from{id}, kind: kind, err: err}
		}
		detail, err := svc.Load(ctx, account)
		return movementDoneMsg{from: from{id}, kind: kind, detail: detail, loadErr: err}
	}
}

func (v *detailView) movement(kind movementKind, f domain.MovementForm) (func(context.Context) error, error) {
	svc, accountID := v.deps.Transactions, v.account.ID
	switch kind {
	case movementWithdraw:
		req, err := domain.ParseWithdraw(accountID, f)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error { return svc.Withdraw(ctx, req) }, nil
	case movementTransfer:
		req, err := domain.ParseTransfer(accountID, f)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error { return svc.Transfer(ctx, req) }, nil
	default:
		req, err := domain.ParseDeposit(accountID, f)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) error { return svc.Deposit(ctx, req) }, nil
	}
}

func (v *detailView) pending() bool {
	return v.lock.InUse() > 0
}

func (v *detailView) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Account " + v.account.AccountNumber))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("#%d %s", v.account.ID, v.account.Status)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Balance: %s\n\n", formatMoney(v.account.Balance))

	b.WriteString(v.form.view(v.fb))
	if v.pending() {
		b.WriteString(mutedStyle.Render("Processing…"))
		b.WriteString("\n")
	}
	if line := v.fb.render(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Transactions"))
	b.WriteString("\n")
	switch v.status {
	case statusLoading:
		b.WriteString(mutedStyle.Render("Loading transactions…"))
		b.WriteString("\n")
	case statusFailed:
		b.WriteString(errorStyle.Render(v.loadErr))
		b.WriteString("\n")
	case statusLoaded:
		if len(v.txs) == 0 {
			b.WriteString("No transactions yet.\n")
		}
		for _, tx := range v.txs {
			fmt.Fprintf(&b, "%s %s %s %s\n",
				pad(formatTimestamp(tx.Timestamp), 17),
				pad(string(tx.Type), 9),
				pad(formatMoney(tx.Amount), 12),
				tx.Description,
			)
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("ctrl+d: deposit • ctrl+w: withdraw • ctrl+t: transfer • tab: next field • esc: back"))
	return b.String()
}
