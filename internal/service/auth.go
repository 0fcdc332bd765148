package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"
	"github.com/boddenberg/luxe-client-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var authTracer = otel.Tracer("service/auth")

// AuthService handles sign-in, registration and the persisted session record.
type AuthService struct {
	gateway port.UserGateway
	store   port.SessionStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(gateway port.UserGateway, store port.SessionStore, metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{gateway: gateway, store: store, metrics: metrics, logger: logger}
}

// ============================================================
// Login: POST /users/login
// ============================================================

// Login authenticates with the backend. It does not persist anything;
// the shell calls StartSession once it has switched to the signed-in state.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	req := &domain.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.gateway.Login(ctx, req)
	if err != nil {
		logFailure(s.logger, "login", err, zap.String("email", req.Email))
		return nil, fmt.Errorf("login: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	s.logger.Info("login succeeded", zap.Int64("user_id", user.ID))
	return user, nil
}

// ============================================================
// Register: POST /users/register, then login
// ============================================================

// Register creates the user and immediately signs in with the same
// credentials; registration alone does not establish a session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	req := &domain.RegisterRequest{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.gateway.Register(ctx, req); err != nil {
		logFailure(s.logger, "register", err, zap.String("email", req.Email))
		return nil, fmt.Errorf("register: %w", err)
	}
	s.logger.Info("registration succeeded", zap.String("email", req.Email))

	return s.Login(ctx, req.Email, req.Password)
}

// ============================================================
// Session record
// ============================================================

// StartSession persists the user so a restart skips the login screen.
// A write failure is logged; the in-memory session carries on regardless.
func (s *AuthService) StartSession(user *domain.User) {
	s.metrics.IncrSessionEvent("login")
	if err := s.store.Save(user); err != nil {
		s.logger.Error("failed to persist session", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

// Restore returns the persisted user, or nil. An unreadable record is
// discarded.
func (s *AuthService) Restore() *domain.User {
	user, err := s.store.Load()
	if err != nil {
		s.logger.Warn("discarding unreadable session record", zap.Error(err))
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Error("failed to clear session record", zap.Error(clearErr))
		}
		return nil
	}
	if user != nil {
		s.metrics.IncrSessionEvent("restore")
		s.logger.Info("session restored", zap.Int64("user_id", user.ID))
	}
	return user
}

// EndSession removes the persisted session record.
func (s *AuthService) EndSession() error {
	s.metrics.IncrSessionEvent("logout")
	if err := s.store.Clear(); err != nil {
		s.logger.Error("failed to clear session record", zap.Error(err))
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}
