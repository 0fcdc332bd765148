package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/boddenberg/luxe-client-go/internal/domain"
)

// ListAccounts fetches every account owned by userID.
func (c *BankingClient) ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error) {
	var accounts []domain.Account
	decoded, err := c.do(ctx, "ListAccounts", http.MethodGet, fmt.Sprintf("/accounts/user/%d", userID), nil, &accounts)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, malformed("ListAccounts", errors.New("empty body"))
	}
	for i := range accounts {
		if err := accounts[i].Validate(); err != nil {
			return nil, malformed("ListAccounts", fmt.Errorf("item %d: %w", i, err))
		}
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// GetAccount fetches a single account.
func (c *BankingClient) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	var account domain.Account
	decoded, err := c.do(ctx, "GetAccount", http.MethodGet, fmt.Sprintf("/accounts/%d", accountID), nil, &account)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, malformed("GetAccount", errors.New("empty body"))
	}
	if err := account.Validate(); err != nil {
		return nil, malformed("GetAccount", err)
	}
	return &account, nil
}

// CreateAccount opens a new account and returns it as stored.
func (c *BankingClient) CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (*domain.Account, error) {
	var account domain.Account
	decoded, err := c.do(ctx, "CreateAccount", http.MethodPost, "/accounts", req, &account)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, malformed("CreateAccount", errors.New("empty body"))
	}
	if err := account.Validate(); err != nil {
		return nil, malformed("CreateAccount", err)
	}
	return &account, nil
}
