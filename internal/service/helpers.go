// Package service provides the use-case layer between the views and the
// banking gateway: sign-in and session handling, accounts and money movements.
package service

import (
	"errors"

	"github.com/boddenberg/luxe-client-go/internal/domain"

	"go.uber.org/zap"
)

// logFailure logs a failed use case once, at a level matching its cause.
func logFailure(logger *zap.Logger, operation string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))

	var failed *domain.ErrRequestFailed
	var validation *domain.ErrValidation
	switch {
	case domain.IsCanceled(err):
		logger.Debug("operation cancelled", fields...)
	case errors.As(err, &validation):
		logger.Debug("input rejected", fields...)
	case errors.As(err, &failed):
		logger.Warn("backend rejected request", append(fields, zap.Int("status", failed.Status))...)
	default:
		logger.Error("backend call failed", fields...)
	}
}
