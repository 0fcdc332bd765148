package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/app"
	"github.com/boddenberg/luxe-client-go/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

type loadStatus int

const (
	statusLoading loadStatus = iota
	statusLoaded
	statusFailed
)

type accountsLoadedMsg struct {
	from
	accounts []domain.Account
	err      error
}

type accountCreatedMsg struct {
	from
	account *domain.Account
	err     error
}

type accountsView struct {
	lifecycle
	deps Deps
	user domain.User

	accounts []domain.Account
	created  []domain.Account
	status   loadStatus
	loadErr  string
	cursor   int

	create     form
	creating   bool
	submitting bool
	fb         feedback
	flashSeq   int
}

func newAccountsView(deps Deps, user domain.User) *accountsView {
	v := &accountsView{
		lifecycle: newLifecycle(),
		deps:      deps,
		user:      user,
		create:    newForm(newField("accountNumber", "New account number", "leave blank to generate", false)),
	}
	v.create.blur()
	return v
}

func (v *accountsView) Init() tea.Cmd {
	return v.load()
}

func (v *accountsView) load() tea.Cmd {
	v.status = statusLoading
	v.loadErr = ""
	ctx, id, svc, userID := v.ctx, v.id, v.deps.Accounts, v.user.ID
	return func() tea.Msg {
		accounts, err := svc.List(ctx, userID)
		return accountsLoadedMsg{from: from{id}, accounts: accounts, err: err}
	}
}

func (v *accountsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case accountsLoadedMsg:
		if msg.err != nil {
			if domain.IsCanceled(msg.err) {
				return v, nil
			}
			v.status = statusFailed
			v.loadErr = domain.DisplayMessage(msg.err)
			return v, nil
		}
		v.status = statusLoaded
		v.accounts = mergeAccounts(msg.accounts, v.created)
		v.clampCursor()
		return v, nil

	case accountCreatedMsg:
		v.submitting = false
		if msg.err != nil {
			if !domain.IsCanceled(msg.err) {
				v.fb.fail(msg.err)
			}
			return v, nil
		}
		v.created = append(v.created, *msg.account)
		if v.status == statusLoaded {
			v.accounts = mergeAccounts(v.accounts, []domain.Account{*msg.account})
		}
		v.create.reset("accountNumber")
		v.deps.Flash.Set(flashKey(v.id), "Account created.")
		v.flashSeq++
		id, seq := v.id, v.flashSeq
		return v, tea.Tick(v.deps.FlashTTL, func(time.Time) tea.Msg {
			return flashExpiredMsg{from: from{id}, seq: seq}
		})

	case flashExpiredMsg:
		if msg.seq == v.flashSeq {
			v.deps.Flash.Delete(flashKey(v.id))
		}
		return v, nil

	case tea.KeyMsg:
		if v.creating {
			return v, v.updateCreate(msg)
		}
		return v, v.updateList(msg)
	}
	return v, nil
}

func (v *accountsView) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.accounts)-1 {
			v.cursor++
		}
	case "enter":
		if v.status != statusLoaded || len(v.accounts) == 0 {
			return nil
		}
		account := v.accounts[v.cursor]
		return navigate(v.id, app.Transition{Event: app.EventOpenAccount, Account: &account})
	case "n":
		if v.status != statusLoaded {
			return nil
		}
		v.creating = true
		v.create.focusOn(0)
	case "r":
		if v.status != statusLoading && !v.submitting {
			return v.load()
		}
	}
	return nil
}

func (v *accountsView) updateCreate(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.creating = false
		v.create.blur()
		return nil
	case tea.KeyEnter:
		return v.submitCreate()
	}
	return v.create.update(msg)
}

// submitCreate opens an account. The result is appended to the list
// without a re-fetch.
func (v *accountsView) submitCreate() tea.Cmd {
	if v.submitting || v.status != statusLoaded {
		return nil
	}
	v.fb.clear()
	v.submitting = true

	ctx, id, svc, userID := v.ctx, v.id, v.deps.Accounts, v.user.ID
	number := v.create.value("accountNumber")
	return func() tea.Msg {
		account, err := svc.Create(ctx, userID, number)
		return accountCreatedMsg{from: from{id}, account: account, err: err}
	}
}

// mergeAccounts appends the accounts of extra that list does not carry yet,
// matched by ID.
func mergeAccounts(list, extra []domain.Account) []domain.Account {
	seen := make(map[int64]bool, len(list))
	for _, a := range list {
		seen[a.ID] = true
	}
	merged := append([]domain.Account(nil), list...)
	for _, a := range extra {
		if !seen[a.ID] {
			seen[a.ID] = true
			merged = append(merged, a)
		}
	}
	return merged
}

func (v *accountsView) clampCursor() {
	if v.cursor >= len(v.accounts) {
		v.cursor = len(v.accounts) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *accountsView) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Accounts"))
	b.WriteString("\n\n")

	switch v.status {
	case statusLoading:
		b.WriteString(mutedStyle.Render("Loading accounts…"))
		b.WriteString("\n")
	case statusFailed:
		b.WriteString(errorStyle.Render(v.loadErr))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("press r to retry"))
		b.WriteString("\n")
	case statusLoaded:
		if len(v.accounts) == 0 {
			b.WriteString("You have no accounts yet.\n")
		}
		for i, a := range v.accounts {
			marker := "  "
			if i == v.cursor && !v.creating {
				marker = "> "
			}
			fmt.Fprintf(&b, "%s%s %s %s\n", marker, pad(a.AccountNumber, 20), pad(formatMoney(a.Balance), 14), a.Status)
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total balance: %s\n\n", formatMoney(domain.TotalBalance(v.accounts))))

	b.WriteString(v.create.view(v.fb))
	if v.submitting {
		b.WriteString(mutedStyle.Render("Creating account…"))
		b.WriteString("\n")
	}
	if flash, ok := v.deps.Flash.Get(flashKey(v.id)); ok {
		b.WriteString(successStyle.Render(flash))
		b.WriteString("\n")
	}
	if line := v.fb.render(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.creating {
		b.WriteString(mutedStyle.Render("enter: create • esc: cancel"))
	} else {
		b.WriteString(mutedStyle.Render("↑/↓: select • enter: open • n: new account • r: reload"))
	}
	return b.String()
}
