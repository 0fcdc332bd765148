package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ============================================================
// Accounts
// ============================================================

// AccountStatus is the lifecycle status the backend assigns to an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
)

// Account is a bank account owned by a user. Unknown fields sent by the
// backend (e.g. the embedded owner) are ignored.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
}

// Validate rejects accounts the backend returned without an identity.
func (a *Account) Validate() error {
	if a.ID <= 0 {
		return errors.New("account id missing")
	}
	return nil
}

// TotalBalance is the arithmetic sum of all account balances.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// AccountDetail is what the account screen renders: the account and its
// full transaction history.
type AccountDetail struct {
	Account      Account
	Transactions []Transaction
}

// ============================================================
// Transactions
// ============================================================

// TransactionType identifies the kind of money movement.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionWithdraw TransactionType = "WITHDRAW"
	TransactionTransfer TransactionType = "TRANSFER"
)

// Transaction is a single money movement recorded by the backend.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   Timestamp       `json:"timestamp"`
}

// Validate rejects transactions without an identity or type.
func (t *Transaction) Validate() error {
	if t.ID <= 0 {
		return errors.New("transaction id missing")
	}
	if t.Type == "" {
		return errors.New("transaction type missing")
	}
	return nil
}
