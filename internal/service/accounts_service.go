package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"
	"github.com/boddenberg/luxe-client-go/internal/port"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var bankTracer = otel.Tracer("service/banking")

// AccountsService lists and opens accounts for the signed-in user.
type AccountsService struct {
	gateway port.AccountGateway
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewAccountsService creates a new accounts service.
func NewAccountsService(gateway port.AccountGateway, metrics *observability.Metrics, logger *zap.Logger) *AccountsService {
	return &AccountsService{gateway: gateway, metrics: metrics, logger: logger, now: time.Now}
}

// ============================================================
// Accounts
// ============================================================

func (s *AccountsService) List(ctx context.Context, userID int64) ([]domain.Account, error) {
	ctx, span := bankTracer.Start(ctx, "AccountsService.List")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", userID))

	accounts, err := s.gateway.ListAccounts(ctx, userID)
	s.metrics.RecordUseCase("list_accounts", err)
	if err != nil {
		logFailure(s.logger, "list_accounts", err, zap.Int64("user_id", userID))
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Create opens an account with a zero balance. A blank accountNumber is
// replaced by a generated one; anything else is sent verbatim.
func (s *AccountsService) Create(ctx context.Context, userID int64, accountNumber string) (*domain.Account, error) {
	ctx, span := bankTracer.Start(ctx, "AccountsService.Create")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", userID))

	if strings.TrimSpace(accountNumber) == "" {
		accountNumber = GenerateAccountNumber(s.now())
	}

	account, err := s.gateway.CreateAccount(ctx, &domain.CreateAccountRequest{
		AccountNumber: accountNumber,
		User:          domain.UserRef{ID: userID},
		Balance:       decimal.Zero,
		Status:        domain.AccountActive,
	})
	s.metrics.RecordUseCase("create_account", err)
	if err != nil {
		logFailure(s.logger, "create_account", err, zap.Int64("user_id", userID))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info("account created",
		zap.Int64("user_id", userID),
		zap.Int64("account_id", account.ID),
		zap.String("account_number", account.AccountNumber),
	)
	return account, nil
}

// GenerateAccountNumber derives an account number from t.
func GenerateAccountNumber(t time.Time) string {
	return fmt.Sprintf("ACC-%d", t.UnixMilli())
}
