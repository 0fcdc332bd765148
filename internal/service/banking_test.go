package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccountsService_CreateGeneratesNumber(t *testing.T) {
	var sent *domain.CreateAccountRequest
	gw := &fakeGateway{create: func(req *domain.CreateAccountRequest) (*domain.Account, error) {
		sent = req
		return &domain.Account{ID: 4, AccountNumber: req.AccountNumber, Balance: req.Balance, Status: req.Status}, nil
	}}
	svc := NewAccountsService(gw, observability.NewMetrics(), zap.NewNop())
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	account, err := svc.Create(context.Background(), 7, "   ")
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Equal(t, "ACC-1700000000123", sent.AccountNumber)
	assert.Equal(t, int64(7), sent.User.ID)
	assert.True(t, sent.Balance.IsZero())
	assert.Equal(t, domain.AccountActive, sent.Status)
	assert.Equal(t, "ACC-1700000000123", account.AccountNumber)
}

func TestAccountsService_CreateKeepsExplicitNumber(t *testing.T) {
	var sent string
	gw := &fakeGateway{create: func(req *domain.CreateAccountRequest) (*domain.Account, error) {
		sent = req.AccountNumber
		return &domain.Account{ID: 4, AccountNumber: req.AccountNumber}, nil
	}}
	svc := NewAccountsService(gw, observability.NewMetrics(), zap.NewNop())

	_, err := svc.Create(context.Background(), 7, " MY-01")
	require.NoError(t, err)
	assert.Equal(t, " MY-01", sent)
}

func TestAccountsService_ListWrapsFailure(t *testing.T) {
	gw := &fakeGateway{listAccounts: func(int64) ([]domain.Account, error) {
		return nil, &domain.ErrRequestFailed{Status: 500, Message: "boom"}
	}}
	svc := NewAccountsService(gw, observability.NewMetrics(), zap.NewNop())

	_, err := svc.List(context.Background(), 7)
	var failed *domain.ErrRequestFailed
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 500, failed.Status)
}

func newTransactions(gw *fakeGateway) *TransactionsService {
	return NewTransactionsService(gw, gw, observability.NewMetrics(), zap.NewNop())
}

func TestTransactionsService_LoadRefreshesAccount(t *testing.T) {
	gw := &fakeGateway{
		getAccount: func(_ context.Context, id int64) (*domain.Account, error) {
			return &domain.Account{ID: id, AccountNumber: "ACC-1", Balance: decimal.NewFromInt(150)}, nil
		},
		listTxs: func(int64) ([]domain.Transaction, error) {
			return []domain.Transaction{{ID: 1, Type: domain.TransactionDeposit, Amount: decimal.NewFromInt(50)}}, nil
		},
	}

	detail, err := newTransactions(gw).Load(context.Background(), domain.Account{ID: 3, Balance: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, detail.Account.Balance.Equal(decimal.NewFromInt(150)))
	require.Len(t, detail.Transactions, 1)
}

func TestTransactionsService_LoadKeepsAccountOnRefreshFailure(t *testing.T) {
	gw := &fakeGateway{getAccount: func(context.Context, int64) (*domain.Account, error) {
		return nil, &domain.ErrRequestFailed{Status: 404, Message: "Not Found"}
	}}
	fallback := domain.Account{ID: 3, AccountNumber: "ACC-1", Balance: decimal.NewFromInt(100)}

	detail, err := newTransactions(gw).Load(context.Background(), fallback)
	require.NoError(t, err)
	assert.Equal(t, "ACC-1", detail.Account.AccountNumber)
	assert.True(t, detail.Account.Balance.Equal(decimal.NewFromInt(100)))
	assert.NotNil(t, detail.Transactions)
}

func TestTransactionsService_LoadFailsWithoutHistory(t *testing.T) {
	gw := &fakeGateway{listTxs: func(int64) ([]domain.Transaction, error) {
		return nil, &domain.ErrRequestFailed{Status: 500, Message: "down"}
	}}

	_, err := newTransactions(gw).Load(context.Background(), domain.Account{ID: 3})
	require.Error(t, err)
	assert.Equal(t, "down", domain.DisplayMessage(err))
}

func TestTransactionsService_Movements(t *testing.T) {
	var seen []any
	gw := &fakeGateway{movement: func(req any) error {
		seen = append(seen, req)
		return nil
	}}
	svc := newTransactions(gw)
	ctx := context.Background()
	amount := decimal.NewFromInt(50)

	require.NoError(t, svc.Deposit(ctx, &domain.DepositRequest{AccountID: 3, Amount: amount, Description: "test"}))
	require.NoError(t, svc.Withdraw(ctx, &domain.WithdrawRequest{AccountID: 3, Amount: amount}))
	require.NoError(t, svc.Transfer(ctx, &domain.TransferRequest{FromAccountID: 3, ToAccountID: 4, Amount: amount}))

	assert.Equal(t, []string{"deposit", "withdraw", "transfer"}, gw.Calls())
	require.Len(t, seen, 3)
	assert.Equal(t, "test", seen[0].(*domain.DepositRequest).Description)
}

func TestTransactionsService_MovementFailure(t *testing.T) {
	gw := &fakeGateway{movement: func(any) error {
		return &domain.ErrRequestFailed{Status: 400, Message: "Insufficient funds"}
	}}

	err := newTransactions(gw).Withdraw(context.Background(), &domain.WithdrawRequest{AccountID: 3, Amount: decimal.NewFromInt(500)})
	require.Error(t, err)
	assert.Equal(t, "Insufficient funds", domain.DisplayMessage(err))
}

func TestTransactionsService_CanceledIsPreserved(t *testing.T) {
	gw := &fakeGateway{movement: func(any) error { return context.Canceled }}

	err := newTransactions(gw).Deposit(context.Background(), &domain.DepositRequest{AccountID: 3, Amount: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.True(t, domain.IsCanceled(err))
}

func TestBankingServices_RecordUseCaseOutcomes(t *testing.T) {
	metrics := observability.NewMetrics()
	failWithdraw := true
	gw := &fakeGateway{movement: func(req any) error {
		if _, ok := req.(*domain.WithdrawRequest); ok && failWithdraw {
			return &domain.ErrRequestFailed{Status: 400, Message: "Insufficient funds"}
		}
		return nil
	}}
	accounts := NewAccountsService(gw, metrics, zap.NewNop())
	transactions := NewTransactionsService(gw, gw, metrics, zap.NewNop())
	ctx := context.Background()
	amount := decimal.NewFromInt(5)

	_, err := accounts.List(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, transactions.Deposit(ctx, &domain.DepositRequest{AccountID: 3, Amount: amount}))
	require.Error(t, transactions.Withdraw(ctx, &domain.WithdrawRequest{AccountID: 3, Amount: amount}))
	failWithdraw = false
	require.NoError(t, transactions.Withdraw(ctx, &domain.WithdrawRequest{AccountID: 3, Amount: amount}))
	_, err = transactions.Load(ctx, domain.Account{ID: 3})
	require.NoError(t, err)

	snap := metrics.GetGatewaySnapshot()
	assert.Equal(t, int64(1), snap.UseCases["list_accounts"]["success"])
	assert.Equal(t, int64(1), snap.UseCases["deposit"]["success"])
	assert.Equal(t, int64(1), snap.UseCases["withdraw"]["rejected"])
	assert.Equal(t, int64(1), snap.UseCases["withdraw"]["success"])
	assert.Equal(t, int64(1), snap.UseCases["load_account"]["success"])
}
