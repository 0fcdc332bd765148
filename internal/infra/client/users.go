package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/boddenberg/luxe-client-go/internal/domain"
)

// Register creates a user. The backend may answer with the new user or
// with no content; both are success.
func (c *BankingClient) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	var user domain.User
	decoded, err := c.do(ctx, "Register", http.MethodPost, "/users/register", req, &user)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, nil
	}
	if err := user.Validate(); err != nil {
		return nil, malformed("Register", err)
	}
	return &user, nil
}

// Login authenticates and returns the user.
func (c *BankingClient) Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, error) {
	var user domain.User
	decoded, err := c.do(ctx, "Login", http.MethodPost, "/users/login", req, &user)
	if err != nil {
		return nil, err
	}
	if !decoded {
		return nil, malformed("Login", errors.New("empty body"))
	}
	if err := user.Validate(); err != nil {
		return nil, malformed("Login", err)
	}
	return &user, nil
}
