package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/boddenberg/luxe-client-go/internal/domain"
)

// Deposit credits an account. The created transaction in the answer is
// ignored; callers re-fetch the history.
func (c *BankingClient) Deposit(ctx context.Context, req *domain.DepositRequest) error {
	_, err := c.do(ctx, "Deposit", http.MethodPost, "/transactions/deposit", req, nil)
	return err
}

// Withdraw debits an account.
func (c *BankingClient) Withdraw(ctx context.Context, req *domain.WithdrawRequest) error {
	_, err := c.do(ctx, "Withdraw", http.MethodPost, "/transactions/withdraw", req, nil)
	return err
}

// Transfer moves money between two accounts.
func (c *BankingClient) Transfer(ctx context.Context, req *domain.TransferRequest) error {
	_, err := c.do(ctx, "Transfer", http.MethodPost, "/transactions/transfer", req, nil)
	return err
}

// ListTransactions fetches the full history of an account.
func (c *BankingClient) ListTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	decoded, err := c.do(ctx, "ListTransactions", http.MethodGet, fmt.Sprintf("/transactions/account/%d", accountID), nil, &transactions)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, malformed("ListTransactions", errors.New("empty body"))
	}
	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return nil, malformed("ListTransactions", fmt.Errorf("item %d: %w", i, err))
		}
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, nil
}
