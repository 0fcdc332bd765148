// Package client is the gateway to the banking backend: one method per
// REST endpoint, plain JSON over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"
	"github.com/boddenberg/luxe-client-go/internal/infra/resilience"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("client")

// ServiceName labels the backend in errors and the circuit breaker.
const ServiceName = "banking-api"

// BankingClient calls the banking REST API rooted at baseURL
// (e.g. http://localhost:8080/api).
type BankingClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	metrics    *observability.Metrics
}

// NewBankingClient creates a new BankingClient. Reads are retried per cfg;
// writes are never retried.
func NewBankingClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics) *BankingClient {
	if cfg.Retryable == nil {
		cfg.Retryable = IsRetryable
	}
	return &BankingClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cb:         cb,
		cfg:        cfg,
		metrics:    metrics,
	}
}

// IsBenign reports errors that say nothing about backend health: answers
// below 500 and calls abandoned by the caller. Used by the circuit breaker.
func IsBenign(err error) bool {
	var failed *domain.ErrRequestFailed
	if errors.As(err, &failed) {
		return failed.Status < http.StatusInternalServerError
	}
	return errors.Is(err, context.Canceled)
}

// IsRetryable reports whether a failed read may be repeated.
func IsRetryable(err error) bool {
	return !IsBenign(err)
}

// do performs one API call. payload is encoded as the JSON body when not nil;
// a 2xx body is decoded into out when out is not nil. decoded is false for
// 204 or an empty body.
func (c *BankingClient) do(ctx context.Context, op, method, path string, payload, out any) (decoded bool, err error) {
	ctx, span := tracer.Start(ctx, "BankingClient."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	start := time.Now()
	defer func() {
		c.metrics.RecordGatewayCall(op, time.Since(start), err)
		if err != nil && !domain.IsCanceled(err) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return false, fmt.Errorf("encode %s request: %w", op, err)
		}
	}

	var raw []byte
	attempt := func() error {
		data, err := c.roundTrip(ctx, method, path, body)
		if err != nil {
			return err
		}
		raw = data
		return nil
	}

	_, err = c.cb.Execute(func() (any, error) {
		if method == http.MethodGet {
			return nil, resilience.RetryWithBackoff(ctx, c.cfg, attempt)
		}
		return nil, attempt()
	})
	if err != nil {
		return false, classify(ctx, err)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, &domain.ErrMalformedResponse{Operation: op, Err: err}
	}
	return true, nil
}

// roundTrip issues a single HTTP request and returns the body of a 2xx
// answer. 204 yields a nil body.
func (c *BankingClient) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.ErrRequestFailed{
			Status:  resp.StatusCode,
			Message: failureMessage(resp.StatusCode, data),
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return data, nil
}

// errorDocument is Spring's default error body.
type errorDocument struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// failureMessage is the response text, the message of a JSON error
// document, or the status reason phrase when the body is empty.
func failureMessage(status int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return http.StatusText(status)
	}
	if strings.HasPrefix(text, "{") {
		var doc errorDocument
		if json.Unmarshal(body, &doc) == nil {
			if doc.Message != "" {
				return doc.Message
			}
			if doc.Error != "" {
				return doc.Error
			}
		}
	}
	return text
}

// classify maps transport and breaker failures onto domain errors.
func classify(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var failed *domain.ErrRequestFailed
	switch {
	case errors.As(err, &failed):
		return failed
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &domain.ErrCircuitOpen{Service: ServiceName}
	default:
		return &domain.ErrExternalService{Service: ServiceName, Err: err}
	}
}

func malformed(op string, err error) error {
	return &domain.ErrMalformedResponse{Operation: op, Err: err}
}
