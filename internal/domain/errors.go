package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error types for consistent error handling across the client.

// ErrRequestFailed is a non-2xx answer from the backend. Client and server
// errors are not told apart; Message is what the user sees.
type ErrRequestFailed struct {
	Status  int
	Message string
}

func (e *ErrRequestFailed) Error() string {
	return e.Message
}

// ErrMalformedResponse indicates a 2xx body that does not match the
// endpoint's schema.
type ErrMalformedResponse struct {
	Operation string
	Err       error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Operation, e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error {
	return e.Err
}

// ErrExternalService indicates the backend could not be reached.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a form value rejected before dispatch.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// IsCanceled reports whether err only means the caller went away.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// DisplayMessage maps an error to the text shown inline in a view.
func DisplayMessage(err error) string {
	var failed *ErrRequestFailed
	var validation *ErrValidation
	var malformed *ErrMalformedResponse
	var circuitOpen *ErrCircuitOpen
	var external *ErrExternalService

	switch {
	case errors.As(err, &failed):
		return failed.Message
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &malformed):
		return "The server sent an unexpected response."
	case errors.As(err, &circuitOpen):
		return "The bank is not responding. Try again in a few seconds."
	case errors.As(err, &external):
		return "Could not reach the bank. Check your connection."
	default:
		return err.Error()
	}
}

// ErrorKind is a short stable label for metrics.
func ErrorKind(err error) string {
	var failed *ErrRequestFailed
	var malformed *ErrMalformedResponse
	var circuitOpen *ErrCircuitOpen

	switch {
	case IsCanceled(err):
		return "canceled"
	case errors.As(err, &failed):
		return "request_failed"
	case errors.As(err, &malformed):
		return "malformed"
	case errors.As(err, &circuitOpen):
		return "circuit_open"
	default:
		return "transport"
	}
}
