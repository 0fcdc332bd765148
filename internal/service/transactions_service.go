package service

import (
	"context"
	"fmt"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"
	"github.com/boddenberg/luxe-client-go/internal/port"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TransactionsService loads an account's history and submits deposits,
// withdrawals and transfers.
type TransactionsService struct {
	accounts     port.AccountGateway
	transactions port.TransactionGateway
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewTransactionsService creates a new transactions service.
func NewTransactionsService(accounts port.AccountGateway, transactions port.TransactionGateway, metrics *observability.Metrics, logger *zap.Logger) *TransactionsService {
	return &TransactionsService{accounts: accounts, transactions: transactions, metrics: metrics, logger: logger}
}

// Load fetches the full transaction history and, concurrently, a fresh copy
// of the account. The history is required; if the account refresh fails the
// given account is kept as is.
func (s *TransactionsService) Load(ctx context.Context, account domain.Account) (*domain.AccountDetail, error) {
	ctx, span := bankTracer.Start(ctx, "TransactionsService.Load")
	defer span.End()
	span.SetAttributes(attribute.Int64("account.id", account.ID))

	detail := &domain.AccountDetail{Account: account}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fresh, err := s.accounts.GetAccount(gCtx, account.ID)
		if err != nil {
			if !domain.IsCanceled(err) {
				s.logger.Warn("account refresh failed, keeping last known balance",
					zap.Int64("account_id", account.ID),
					zap.Error(err),
				)
			}
			return nil
		}
		detail.Account = *fresh
		return nil
	})

	g.Go(func() error {
		txs, err := s.transactions.ListTransactions(gCtx, account.ID)
		if err != nil {
			return err
		}
		detail.Transactions = txs
		return nil
	})

	err := g.Wait()
	s.metrics.RecordUseCase("load_account", err)
	if err != nil {
		logFailure(s.logger, "list_transactions", err, zap.Int64("account_id", account.ID))
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return detail, nil
}

// ============================================================
// Money movements
// ============================================================

func (s *TransactionsService) Deposit(ctx context.Context, req *domain.DepositRequest) error {
	ctx, span := bankTracer.Start(ctx, "TransactionsService.Deposit")
	defer span.End()
	span.SetAttributes(attribute.Int64("account.id", req.AccountID))

	err := s.transactions.Deposit(ctx, req)
	s.metrics.RecordUseCase("deposit", err)
	if err != nil {
		logFailure(s.logger, "deposit", err, zap.Int64("account_id", req.AccountID))
		return fmt.Errorf("deposit: %w", err)
	}
	s.logger.Info("deposit submitted",
		zap.Int64("account_id", req.AccountID),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}

func (s *TransactionsService) Withdraw(ctx context.Context, req *domain.WithdrawRequest) error {
	ctx, span := bankTracer.Start(ctx, "TransactionsService.Withdraw")
	defer span.End()
	span.SetAttributes(attribute.Int64("account.id", req.AccountID))

	err := s.transactions.Withdraw(ctx, req)
	s.metrics.RecordUseCase("withdraw", err)
	if err != nil {
		logFailure(s.logger, "withdraw", err, zap.Int64("account_id", req.AccountID))
		return fmt.Errorf("withdraw: %w", err)
	}
	s.logger.Info("withdrawal submitted",
		zap.Int64("account_id", req.AccountID),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}

func (s *TransactionsService) Transfer(ctx context.Context, req *domain.TransferRequest) error {
	ctx, span := bankTracer.Start(ctx, "TransactionsService.Transfer")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("account.id", req.FromAccountID),
		attribute.Int64("to_account.id", req.ToAccountID),
	)

	err := s.transactions.Transfer(ctx, req)
	s.metrics.RecordUseCase("transfer", err)
	if err != nil {
		logFailure(s.logger, "transfer", err,
			zap.Int64("account_id", req.FromAccountID),
			zap.Int64("to_account_id", req.ToAccountID),
		)
		return fmt.Errorf("transfer: %w", err)
	}
	s.logger.Info("transfer submitted",
		zap.Int64("account_id", req.FromAccountID),
		zap.Int64("to_account_id", req.ToAccountID),
		zap.String("amount", req.Amount.String()),
	)
	return nil
}
