package service

import (
	"context"
	"sync"

	"github.com/boddenberg/luxe-client-go/internal/domain"
)

// fakeGateway is an in-memory port.Gateway. Each hook is optional; a nil
// hook returns a zero value.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	register     func(*domain.RegisterRequest) (*domain.User, error)
	login        func(*domain.LoginRequest) (*domain.User, error)
	listAccounts func(int64) ([]domain.Account, error)
	getAccount   func(context.Context, int64) (*domain.Account, error)
	create       func(*domain.CreateAccountRequest) (*domain.Account, error)
	movement     func(any) error
	listTxs      func(int64) ([]domain.Transaction, error)
}

func (f *fakeGateway) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) Register(_ context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	f.record("register")
	if f.register == nil {
		return nil, nil
	}
	return f.register(req)
}

func (f *fakeGateway) Login(_ context.Context, req *domain.LoginRequest) (*domain.User, error) {
	f.record("login")
	if f.login == nil {
		return &domain.User{ID: 1, Email: req.Email}, nil
	}
	return f.login(req)
}

func (f *fakeGateway) ListAccounts(_ context.Context, userID int64) ([]domain.Account, error) {
	f.record("list_accounts")
	if f.listAccounts == nil {
		return []domain.Account{}, nil
	}
	return f.listAccounts(userID)
}

func (f *fakeGateway) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	f.record("get_account")
	if f.getAccount == nil {
		return &domain.Account{ID: id}, nil
	}
	return f.getAccount(ctx, id)
}

func (f *fakeGateway) CreateAccount(_ context.Context, req *domain.CreateAccountRequest) (*domain.Account, error) {
	f.record("create_account")
	if f.create == nil {
		return &domain.Account{ID: 99, AccountNumber: req.AccountNumber, Balance: req.Balance, Status: req.Status}, nil
	}
	return f.create(req)
}

func (f *fakeGateway) Deposit(_ context.Context, req *domain.DepositRequest) error {
	f.record("deposit")
	return f.move(req)
}

func (f *fakeGateway) Withdraw(_ context.Context, req *domain.WithdrawRequest) error {
	f.record("withdraw")
	return f.move(req)
}

func (f *fakeGateway) Transfer(_ context.Context, req *domain.TransferRequest) error {
	f.record("transfer")
	return f.move(req)
}

func (f *fakeGateway) move(req any) error {
	if f.movement == nil {
		return nil
	}
	return f.movement(req)
}

func (f *fakeGateway) ListTransactions(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	f.record("list_transactions")
	if f.listTxs == nil {
		return []domain.Transaction{}, nil
	}
	return f.listTxs(accountID)
}

// memStore is an in-memory port.SessionStore.
type memStore struct {
	user    *domain.User
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (s *memStore) Load() (*domain.User, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.user, nil
}

func (s *memStore) Save(user *domain.User) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	u := *user
	s.user = &u
	return nil
}

func (s *memStore) Clear() error {
	s.clears++
	s.user = nil
	s.loadErr = nil
	return nil
}
