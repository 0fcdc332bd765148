package domain

import "github.com/shopspring/decimal"

func init() {
	// The backend binds amounts to BigDecimal fields and expects JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ============================================================
// Users: POST /users/register, POST /users/login
// ============================================================

// RegisterRequest is the body for POST /users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the required fields only; format and strength are
// the backend's business.
func (r *RegisterRequest) Validate() error {
	return firstError(
		Required("name", r.Name),
		Required("email", r.Email),
		Required("password", r.Password),
	)
}

// LoginRequest is the body for POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return firstError(
		Required("email", r.Email),
		Required("password", r.Password),
	)
}

// ============================================================
// Accounts: POST /accounts
// ============================================================

// UserRef references the owning user by id.
type UserRef struct {
	ID int64 `json:"id"`
}

// CreateAccountRequest is the body for POST /accounts.
type CreateAccountRequest struct {
	AccountNumber string          `json:"accountNumber"`
	User          UserRef         `json:"user"`
	Balance       decimal.Decimal `json:"balance"`
	Status        AccountStatus   `json:"status"`
}

// ============================================================
// Transactions: POST /transactions/{deposit,withdraw,transfer}
// ============================================================

// DepositRequest is the body for POST /transactions/deposit.
type DepositRequest struct {
	AccountID   int64           `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// WithdrawRequest is the body for POST /transactions/withdraw.
type WithdrawRequest struct {
	AccountID   int64           `json:"accountId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// TransferRequest is the body for POST /transactions/transfer.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

// ============================================================
// Form parsing
// ============================================================

// MovementForm holds the raw text of the account screen's shared fields.
type MovementForm struct {
	Amount      string
	Description string
	ToAccount   string
}

// ParseDeposit validates the form and builds a deposit for accountID.
func ParseDeposit(accountID int64, f MovementForm) (*DepositRequest, error) {
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return nil, err
	}
	return &DepositRequest{AccountID: accountID, Amount: amount, Description: f.Description}, nil
}

// ParseWithdraw validates the form and builds a withdrawal for accountID.
func ParseWithdraw(accountID int64, f MovementForm) (*WithdrawRequest, error) {
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return nil, err
	}
	return &WithdrawRequest{AccountID: accountID, Amount: amount, Description: f.Description}, nil
}

// ParseTransfer validates the form and builds a transfer out of accountID.
// The destination must be a positive integer id other than the source.
func ParseTransfer(accountID int64, f MovementForm) (*TransferRequest, error) {
	to, err := ParseAccountID("toAccount", f.ToAccount)
	if err != nil {
		return nil, err
	}
	if to == accountID {
		return nil, &ErrValidation{Field: "toAccount", Message: "Cannot transfer to the same account."}
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return nil, err
	}
	return &TransferRequest{
		FromAccountID: accountID,
		ToAccountID:   to,
		Amount:        amount,
		Description:   f.Description,
	}, nil
}
