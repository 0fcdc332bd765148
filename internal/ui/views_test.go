package ui

import (
	"strings"
	"testing"

	"github.com/boddenberg/luxe-client-go/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIn(t *testing.T, h *harness) *Shell {
	t.Helper()
	h.seedExample()
	s := h.start(t)
	login(t, s, "ann@luxe.io", "secret")
	return s
}

func TestAccounts_TotalBalance(t *testing.T) {
	h := newHarness(t)
	h.bank.addAccount(7, domain.Account{ID: 4, AccountNumber: "ACC-2", Balance: decimal.RequireFromString("50.5"), Status: domain.AccountActive})
	s := signedIn(t, h)

	assert.Contains(t, s.View(), "Total balance: $150.50")
}

func TestAccounts_CreateWithGeneratedNumber(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)

	typeText(t, s, "n")
	press(t, s, tea.KeyEnter)

	require.Len(t, h.bank.created, 1)
	sent := h.bank.created[0]
	assert.True(t, strings.HasPrefix(sent.AccountNumber, "ACC-"), sent.AccountNumber)
	assert.Greater(t, len(sent.AccountNumber), len("ACC-"))
	assert.Equal(t, int64(7), sent.User.ID)
	assert.True(t, sent.Balance.IsZero())
	assert.Equal(t, domain.AccountActive, sent.Status)

	av := s.active.(*accountsView)
	require.Len(t, av.accounts, 2)
	assert.Equal(t, sent.AccountNumber, av.accounts[1].AccountNumber)
	assert.Equal(t, 1, h.bank.count("list_accounts"), "the created account is appended without a re-fetch")
}

func TestAccounts_CreatePreservesExplicitNumber(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)

	typeText(t, s, "n")
	typeText(t, s, "MY-ACCOUNT")
	press(t, s, tea.KeyEnter)

	require.Len(t, h.bank.created, 1)
	assert.Equal(t, "MY-ACCOUNT", h.bank.created[0].AccountNumber)
	assert.Contains(t, s.View(), "MY-ACCOUNT")
	assert.Contains(t, s.View(), "Total balance: $100.00")
}

func TestAccounts_FlashClearsItself(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	typeText(t, s, "n")

	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, tick := s.Update(cmd())

	assert.Contains(t, s.View(), "Account created.")

	require.NotNil(t, tick)
	send(t, s, tick())
	assert.NotContains(t, s.View(), "Account created.")
}

func TestAccounts_OlderFlashTickKeepsNewerFlash(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	typeText(t, s, "n")

	_, first := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)
	_, firstTick := s.Update(first())
	_, second := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, second)
	_, secondTick := s.Update(second())
	require.Len(t, h.bank.created, 2)

	require.NotNil(t, firstTick)
	send(t, s, firstTick())
	assert.Contains(t, s.View(), "Account created.")

	require.NotNil(t, secondTick)
	send(t, s, secondTick())
	assert.NotContains(t, s.View(), "Account created.")
}

func TestAccounts_CreateIgnoredWhileLoading(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	av := s.active.(*accountsView)

	_, reload := av.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, reload)
	require.Equal(t, statusLoading, av.status)

	typeText(t, s, "n")
	assert.False(t, av.creating)
	press(t, s, tea.KeyEnter)
	assert.Empty(t, h.bank.created)

	send(t, s, reload())
	assert.Equal(t, statusLoaded, av.status)
}

func TestAccounts_CreatedBeforeLoadSurvivesLoad(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	av := s.active.(*accountsView)

	_, reload := av.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, reload)

	created := domain.Account{ID: 50, AccountNumber: "ACC-NEW", Balance: decimal.NewFromInt(20), Status: domain.AccountActive}
	send(t, s, accountCreatedMsg{from: from{av.ID()}, account: &created})
	send(t, s, reload())

	require.Len(t, av.accounts, 2)
	assert.Equal(t, "ACC-1", av.accounts[0].AccountNumber)
	assert.Equal(t, "ACC-NEW", av.accounts[1].AccountNumber)
	assert.Contains(t, s.View(), "ACC-NEW")
	assert.Contains(t, s.View(), "Total balance: $120.00")
}

func TestAccounts_CreatedAfterFailedLoadIsListedOnRetry(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	av := s.active.(*accountsView)

	send(t, s, accountsLoadedMsg{from: from{av.ID()}, err: &domain.ErrRequestFailed{Status: 500, Message: "Internal Server Error"}})
	created := domain.Account{ID: 50, AccountNumber: "ACC-NEW", Balance: decimal.NewFromInt(20), Status: domain.AccountActive}
	send(t, s, accountCreatedMsg{from: from{av.ID()}, account: &created})
	assert.NotContains(t, s.View(), "Total balance: $120.00")

	typeText(t, s, "r")
	assert.Contains(t, s.View(), "ACC-NEW")
	assert.Contains(t, s.View(), "Total balance: $120.00")
}

func TestMergeAccounts_SkipsKnownIDs(t *testing.T) {
	list := []domain.Account{{ID: 3, AccountNumber: "ACC-1"}, {ID: 4, AccountNumber: "ACC-2"}}
	extra := []domain.Account{{ID: 4, AccountNumber: "stale"}, {ID: 9, AccountNumber: "ACC-9"}}

	merged := mergeAccounts(list, extra)
	require.Len(t, merged, 3)
	assert.Equal(t, "ACC-2", merged[1].AccountNumber)
	assert.Equal(t, "ACC-9", merged[2].AccountNumber)
	assert.Len(t, list, 2)
}

func TestAccounts_EmptyAndFailedStates(t *testing.T) {
	h := newHarness(t)
	h.bank.addUser(domain.User{ID: 9, Name: "Cy", Email: "cy@luxe.io"}, "pw")
	s := h.start(t)
	login(t, s, "cy@luxe.io", "pw")

	assert.Contains(t, s.View(), "You have no accounts yet.")
	assert.Contains(t, s.View(), "Total balance: $0.00")

	av := s.active.(*accountsView)
	send(t, s, accountsLoadedMsg{from: from{av.ID()}, err: &domain.ErrRequestFailed{Status: 500, Message: "Internal Server Error"}})
	assert.Contains(t, s.View(), "Internal Server Error")
	assert.NotContains(t, s.View(), "You have no accounts yet.")
}

func TestDetail_PendingSubmissionRejectsSecondSubmit(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	press(t, s, tea.KeyEnter)
	typeText(t, s, "10")

	dv := s.active.(*detailView)
	_, first := dv.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, first)
	assert.True(t, dv.pending())

	_, second := dv.Update(tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Nil(t, second)
	_, third := dv.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Nil(t, third)

	send(t, s, first())
	assert.Equal(t, 1, h.bank.count("deposit"))
	assert.Zero(t, h.bank.count("withdraw"))
	assert.False(t, dv.pending())
}

func TestDetail_FieldsFrozenWhileMovementPending(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	press(t, s, tea.KeyEnter)
	typeText(t, s, "10")

	dv := s.active.(*detailView)
	_, pending := dv.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	require.NotNil(t, pending)

	typeText(t, s, "5")
	press(t, s, tea.KeyTab)
	typeText(t, s, "late note")
	assert.Equal(t, "10", dv.form.value("amount"))
	assert.Empty(t, dv.form.value("description"))

	send(t, s, pending())
	assert.False(t, dv.pending())
	assert.Empty(t, dv.form.value("amount"))
	assert.Contains(t, s.View(), "$110.00")
}

func TestDetail_InvalidAmountIsNotSent(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	press(t, s, tea.KeyEnter)

	for input, want := range map[string]string{
		"":    "Amount is required.",
		"abc": "Amount must be a number.",
		"-5":  "Amount must be greater than zero.",
	} {
		dv := s.active.(*detailView)
		dv.form.reset("amount")
		if input != "" {
			typeText(t, s, input)
		}
		press(t, s, tea.KeyCtrlD)
		assert.Contains(t, s.View(), want, input)
		assert.False(t, dv.pending())
	}
	assert.Zero(t, h.bank.count("deposit"))
}

func TestDetail_TransferToSameAccountIsRejected(t *testing.T) {
	h := newHarness(t)
	s := signedIn(t, h)
	press(t, s, tea.KeyEnter)

	typeText(t, s, "5")
	press(t, s, tea.KeyShiftTab)
	typeText(t, s, "3")
	press(t, s, tea.KeyCtrlT)

	assert.Contains(t, s.View(), "Cannot transfer to the same account.")
	assert.Zero(t, h.bank.count("transfer"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$100.00", formatMoney(decimal.NewFromInt(100)))
	assert.Equal(t, "$0.10", formatMoney(decimal.RequireFromString("0.1")))
	assert.Equal(t, "-$5.25", formatMoney(decimal.RequireFromString("-5.25")))
}
