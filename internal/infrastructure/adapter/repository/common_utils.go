package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// ErrorClassifier classifies postgres and sqlite driver errors by message
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	if err == nil {
		return ""
	}

	if c.IsDuplicateKeyError(err) {
		return DuplicateKeyError
	}
	if c.IsLockError(err) {
		return LockError
	}
	if c.IsTransientError(err) {
		return TransientError
	}
	if c.IsConnectionError(err) {
		return ConnectionError
	}
	if c.IsConstraintError(err) {
		return ConstraintError
	}

	return ""
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "connection reset") ||
		strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "timeout") ||
		strings.Contains(err.Error(), "EOF") ||
		strings.Contains(err.Error(), "server closed") ||
		strings.Contains(err.Error(), "broken pipe")
}

// IsLockError checks if the error is due to locking or a serialization abort
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "deadlock") ||
		strings.Contains(err.Error(), "lock wait timeout") ||
		strings.Contains(err.Error(), "could not serialize access") ||
		strings.Contains(err.Error(), "serialization failure") ||
		strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "SQLITE_BUSY")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "connection") ||
		strings.Contains(err.Error(), "dial") ||
		strings.Contains(err.Error(), "network") ||
		c.IsTransientError(err)
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "constraint") ||
		strings.Contains(err.Error(), "violates") ||
		strings.Contains(err.Error(), "foreign key") ||
		strings.Contains(err.Error(), "not null") ||
		c.IsDuplicateKeyError(err)
}

// MapError converts a driver error into a domain error. notFound is returned
// for gorm.ErrRecordNotFound; duplicate keys become duplicate when it is set.
func (c *ErrorClassifier) MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", errs.ErrCollaboratorUnavailable, err.Error())
	}

	switch c.Classify(err) {
	case DuplicateKeyError:
		if duplicate != nil {
			return duplicate
		}
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	case LockError:
		return fmt.Errorf("%w: %s", errs.ErrTransientConflict, err.Error())
	case TransientError, ConnectionError:
		return fmt.Errorf("%w: %s", errs.ErrCollaboratorUnavailable, err.Error())
	case ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}
}
