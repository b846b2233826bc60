package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
)

// ErrorMapper maps errors raised while opening or closing a unit to domain
// errors. Repository statements are mapped by the repository package.
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s canceled", errs.ErrCollaboratorUnavailable, operation)
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serializ") ||
		strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "lock timeout"):
		return fmt.Errorf("%w: %s", errs.ErrTransientConflict, operation)

	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return errs.ErrConstraintViolation

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "bad connection"):
		return fmt.Errorf("%w: %s", errs.ErrCollaboratorUnavailable, operation)

	case strings.Contains(errMsg, "timeout"):
		return fmt.Errorf("%w: %s operation timed out", errs.ErrCollaboratorUnavailable, operation)

	default:
		return fmt.Errorf("%w: %s: %s", errs.ErrInternalServer, operation, err.Error())
	}
}
