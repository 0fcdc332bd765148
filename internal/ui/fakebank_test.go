package ui

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/domain"

	"github.com/shopspring/decimal"
)

// fakeBank is an in-memory port.Gateway that behaves like the backend for
// the happy paths and lets tests inject failures.
type fakeBank struct {
	mu       sync.Mutex
	users    map[string]domain.User
	password map[string]string
	accounts map[int64]*domain.Account
	owners   map[int64]int64
	txs      map[int64][]domain.Transaction
	nextID   int64
	calls    map[string]int

	created []domain.CreateAccountRequest

	loginErr error
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		users:    map[string]domain.User{},
		password: map[string]string{},
		accounts: map[int64]*domain.Account{},
		owners:   map[int64]int64{},
		txs:      map[int64][]domain.Transaction{},
		nextID:   100,
		calls:    map[string]int{},
	}
}

func (b *fakeBank) addUser(u domain.User, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[u.Email] = u
	b.password[u.Email] = password
}

func (b *fakeBank) addAccount(userID int64, a domain.Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc := a
	b.accounts[a.ID] = &acc
	b.owners[a.ID] = userID
}

func (b *fakeBank) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *fakeBank) Register(_ context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["register"]++
	if _, ok := b.users[req.Email]; ok {
		return nil, &domain.ErrRequestFailed{Status: 400, Message: "Email already registered"}
	}
	b.nextID++
	u := domain.User{ID: b.nextID, Name: req.Name, Email: req.Email}
	b.users[req.Email] = u
	b.password[req.Email] = req.Password
	return nil, nil
}

func (b *fakeBank) Login(_ context.Context, req *domain.LoginRequest) (*domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["login"]++
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	u, ok := b.users[req.Email]
	if !ok || b.password[req.Email] != req.Password {
		return nil, &domain.ErrRequestFailed{Status: 401, Message: "Invalid credentials"}
	}
	return &u, nil
}

func (b *fakeBank) ListAccounts(_ context.Context, userID int64) ([]domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["list_accounts"]++
	out := []domain.Account{}
	for id, owner := range b.owners {
		if owner == userID {
			out = append(out, *b.accounts[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (b *fakeBank) GetAccount(_ context.Context, id int64) (*domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["get_account"]++
	a, ok := b.accounts[id]
	if !ok {
		return nil, &domain.ErrRequestFailed{Status: 404, Message: "Not Found"}
	}
	acc := *a
	return &acc, nil
}

func (b *fakeBank) CreateAccount(_ context.Context, req *domain.CreateAccountRequest) (*domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["create_account"]++
	b.created = append(b.created, *req)
	b.nextID++
	acc := domain.Account{ID: b.nextID, AccountNumber: req.AccountNumber, Balance: req.Balance, Status: req.Status}
	b.accounts[acc.ID] = &acc
	b.owners[acc.ID] = req.User.ID
	out := acc
	return &out, nil
}

func (b *fakeBank) Deposit(_ context.Context, req *domain.DepositRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["deposit"]++
	return b.move(req.AccountID, req.Amount, domain.TransactionDeposit, req.Description)
}

func (b *fakeBank) Withdraw(_ context.Context, req *domain.WithdrawRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["withdraw"]++
	a, ok := b.accounts[req.AccountID]
	if ok && a.Balance.LessThan(req.Amount) {
		return &domain.ErrRequestFailed{Status: 400, Message: "Insufficient funds"}
	}
	return b.move(req.AccountID, req.Amount.Neg(), domain.TransactionWithdraw, req.Description)
}

func (b *fakeBank) Transfer(_ context.Context, req *domain.TransferRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["transfer"]++
	if _, ok := b.accounts[req.ToAccountID]; !ok {
		return &domain.ErrRequestFailed{Status: 404, Message: "Destination account not found"}
	}
	if err := b.move(req.FromAccountID, req.Amount.Neg(), domain.TransactionTransfer, req.Description); err != nil {
		return err
	}
	b.accounts[req.ToAccountID].Balance = b.accounts[req.ToAccountID].Balance.Add(req.Amount)
	return nil
}

func (b *fakeBank) move(accountID int64, delta decimal.Decimal, typ domain.TransactionType, desc string) error {
	a, ok := b.accounts[accountID]
	if !ok {
		return &domain.ErrRequestFailed{Status: 404, Message: "Account not found"}
	}
	a.Balance = a.Balance.Add(delta)
	b.nextID++
	b.txs[accountID] = append(b.txs[accountID], domain.Transaction{
		ID:          b.nextID,
		Type:        typ,
		Amount:      delta.Abs(),
		Description: desc,
		Timestamp:   domain.Timestamp{Time: time.Now()},
	})
	return nil
}

func (b *fakeBank) ListTransactions(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["list_transactions"]++
	return append([]domain.Transaction{}, b.txs[accountID]...), nil
}
