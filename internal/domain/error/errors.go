package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest       = 4000
	CodeInsufficientFunds    = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidUserID        = 4003
	CodeConstraintViolation  = 4005
	CodeInvalidUsage         = 4007
	CodeBelowMinimumMB       = 4008
	CodePriceMismatch        = 4009
	CodeSelfRequest          = 4010
	CodeInvalidCredentials   = 4011
	CodeNotRequestParty      = 4030
	CodeUserNotFound         = 4040
	CodeRequestNotFound      = 4041
	CodeNotificationNotFound = 4042
	CodeInvalidTransition    = 4090
	CodeActiveRequestExists  = 4091
	CodeDuplicateUser        = 4092
	CodeProviderUnavailable  = 4093

	// 5xxx - Server errors
	CodeInternalServer          = 5000
	CodeCollaboratorUnavailable = 5030
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a debit exceeds the account's coin balance
	ErrInsufficientFunds = errors.New("insufficient balance, recharge to continue")

	// ErrInvalidAmount is returned when a coin amount is zero, negative or out of range
	ErrInvalidAmount = errors.New("invalid coin amount")

	// ErrInvalidUserID is returned when an account id is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidRequestID is returned when a request id is empty
	ErrInvalidRequestID = errors.New("request ID cannot be empty")

	// ErrInvalidTransactionType is returned for a transaction type outside the ledger's set
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidRole is returned for a role other than provider or requester
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidTransition is returned when a request is not in the state an operation requires
	ErrInvalidTransition = errors.New("invalid request state transition")

	// ErrInvalidUsage is returned when reported usage is negative or exceeds the requested MB
	ErrInvalidUsage = errors.New("invalid usage amount")

	// ErrBelowMinimumMB is returned when a request asks for less than the minimum MB
	ErrBelowMinimumMB = errors.New("requested MB below minimum")

	// ErrPriceMismatch is returned when offered coins or a purchase price does not match the tariff
	ErrPriceMismatch = errors.New("price does not match tariff")

	// ErrSelfRequest is returned when requester and provider are the same account
	ErrSelfRequest = errors.New("cannot request internet from yourself")

	// ErrProviderUnavailable is returned when the chosen provider is not sharing
	ErrProviderUnavailable = errors.New("provider is not available")

	// ErrActiveRequestExists is returned when the requester already has an open request
	ErrActiveRequestExists = errors.New("requester already has an active request")

	// ErrNotRequestParty is returned when the caller may not act on a request
	ErrNotRequestParty = errors.New("caller is not allowed to act on this request")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrRequestNotFound is returned when the requested sharing request doesn't exist
	ErrRequestNotFound = errors.New("request not found")

	// ErrNotificationNotFound is returned when the notification doesn't exist for the user
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrDuplicateUser is returned when an account with the same id or email exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned when email or password do not match
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRequest is returned when input fails schema validation
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrTransientConflict is returned when the store aborted a unit because of a concurrent writer
	ErrTransientConflict = errors.New("concurrent update conflict")

	// ErrCollaboratorUnavailable is returned when the store or another collaborator is unreachable
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidUsage):
		return CodeInvalidUsage
	case errors.Is(err, ErrBelowMinimumMB):
		return CodeBelowMinimumMB
	case errors.Is(err, ErrPriceMismatch):
		return CodePriceMismatch
	case errors.Is(err, ErrSelfRequest):
		return CodeSelfRequest
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrNotRequestParty):
		return CodeNotRequestParty
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrRequestNotFound):
		return CodeRequestNotFound
	case errors.Is(err, ErrNotificationNotFound):
		return CodeNotificationNotFound
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrActiveRequestExists):
		return CodeActiveRequestExists
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrProviderUnavailable):
		return CodeProviderUnavailable
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrInvalidRequestID),
		errors.Is(err, ErrInvalidTransactionType),
		errors.Is(err, ErrInvalidRole):
		return CodeInvalidRequest
	case errors.Is(err, ErrCollaboratorUnavailable), errors.Is(err, ErrTransientConflict):
		return CodeCollaboratorUnavailable
	default:
		return CodeInternalServer
	}
}

// LedgerError wraps a failed ledger operation with the account and amount involved
type LedgerError struct {
	UserID    string
	Operation string
	Coins     int64
	Err       error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s of %d coins failed for user %s: %v", e.Operation, e.Coins, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"user_id":    e.UserID,
		"operation":  e.Operation,
		"coins":      e.Coins,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	UserID    string
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %d coins, available %d",
		e.UserID, e.Required, e.Available)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID,
		"required":   e.Required,
		"available":  e.Available,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID string, required, available int64) error {
	return &InsufficientFundsError{
		UserID:    userID,
		Required:  required,
		Available: available,
	}
}

// TransitionError reports a request operation attempted from the wrong state
type TransitionError struct {
	RequestID string
	From      string
	To        string
}

// Error implements the error interface
func (e *TransitionError) Error() string {
	if e.From == "" {
		return fmt.Sprintf("request %s cannot move to %s: state changed concurrently", e.RequestID, e.To)
	}
	return fmt.Sprintf("request %s cannot move from %s to %s", e.RequestID, e.From, e.To)
}

// Is checks if the target error is an ErrInvalidTransition
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// LogFields returns a map of fields for structured logging
func (e *TransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_transition",
		"request_id": e.RequestID,
		"from":       e.From,
		"to":         e.To,
		"error_code": CodeInvalidTransition,
	}
}

// NewTransitionError creates a new transition error
func NewTransitionError(requestID, from, to string) error {
	return &TransitionError{RequestID: requestID, From: from, To: to}
}

// UsageError reports settlement usage outside [0, mb]
type UsageError struct {
	RequestID string
	MB        int64
	MBUsed    int64
}

// Error implements the error interface
func (e *UsageError) Error() string {
	return fmt.Sprintf("usage %d MB is outside 0..%d for request %s", e.MBUsed, e.MB, e.RequestID)
}

// Is checks if the target error is an ErrInvalidUsage
func (e *UsageError) Is(target error) bool {
	return target == ErrInvalidUsage
}

// LogFields returns a map of fields for structured logging
func (e *UsageError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "invalid_usage",
		"request_id": e.RequestID,
		"mb":         e.MB,
		"mb_used":    e.MBUsed,
		"error_code": CodeInvalidUsage,
	}
}

// NewUsageError creates a new usage error
func NewUsageError(requestID string, mb, mbUsed int64) error {
	return &UsageError{RequestID: requestID, MB: mb, MBUsed: mbUsed}
}

// ValidationError lists the fields that failed schema validation
type ValidationError struct {
	Entity string
	Fields []string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Entity, e.Fields)
}

// Is checks if the target error is an ErrInvalidRequest
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"entity":     e.Entity,
		"fields":     e.Fields,
		"error_code": CodeInvalidRequest,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsInvalidTransitionError checks if the error is a rejected state transition
func IsInvalidTransitionError(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRequestNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsRetryable reports whether the caller may safely retry the whole operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransientConflict) || errors.Is(err, ErrCollaboratorUnavailable)
}

// LogFieldsOf returns the structured fields of typed errors, or just the message
func LogFieldsOf(err error) map[string]any {
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	return map[string]any{"error": err.Error(), "error_code": ErrorCode(err)}
}
