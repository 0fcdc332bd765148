// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service and
// ui layers from the concrete HTTP gateway and session storage.
package port

import (
	"context"

	"github.com/boddenberg/luxe-client-go/internal/domain"
)

// UserGateway covers the /users endpoints.
type UserGateway interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, error)
}

// AccountGateway covers the /accounts endpoints.
type AccountGateway interface {
	ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)
	CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (*domain.Account, error)
}

// TransactionGateway covers the /transactions endpoints.
type TransactionGateway interface {
	Deposit(ctx context.Context, req *domain.DepositRequest) error
	Withdraw(ctx context.Context, req *domain.WithdrawRequest) error
	Transfer(ctx context.Context, req *domain.TransferRequest) error
	ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Gateway is the full backend API as seen by the client.
type Gateway interface {
	UserGateway
	AccountGateway
	TransactionGateway
}

// SessionStore persists the session record across restarts.
// Load returns (nil, nil) when no session is stored.
type SessionStore interface {
	Load() (*domain.User, error)
	Save(user *domain.User) error
	Clear() error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
