package request

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/port/usecase"
)

const maxClientRefLength = 64

// Validator checks commands before any unit of work is opened
type Validator struct {
	minMB int64
}

// NewValidator creates a Validator. minMB never goes below entity.MinRequestMB.
func NewValidator(minMB int64) *Validator {
	if minMB < entity.MinRequestMB {
		minMB = entity.MinRequestMB
	}
	return &Validator{minMB: minMB}
}

// MinMB is the effective minimum request size
func (v *Validator) MinMB() int64 {
	return v.minMB
}

// ValidateCreate validates all fields of a create command
func (v *Validator) ValidateCreate(cmd usecase.CreateRequestCommand) error {
	if strings.TrimSpace(cmd.RequesterID) == "" || strings.TrimSpace(cmd.ProviderID) == "" {
		return errs.ErrInvalidUserID
	}
	if cmd.RequesterID == cmd.ProviderID {
		return errs.ErrSelfRequest
	}
	if err := v.validateMB(cmd.MB); err != nil {
		return err
	}
	if cmd.CoinsOffered != entity.CoinsForMB(cmd.MB) {
		return fmt.Errorf("%w: %d MB costs %d coins, offered %d",
			errs.ErrPriceMismatch, cmd.MB, entity.CoinsForMB(cmd.MB), cmd.CoinsOffered)
	}
	if len(cmd.ClientRef) > maxClientRefLength {
		return &errs.ValidationError{Entity: "request", Fields: []string{"ClientRef:max"}}
	}
	return nil
}

// ValidateAction validates the identifiers of accept, ignore and complete
func (v *Validator) ValidateAction(actorID, requestID string) error {
	if strings.TrimSpace(actorID) == "" {
		return errs.ErrInvalidUserID
	}
	if strings.TrimSpace(requestID) == "" {
		return errs.ErrInvalidRequestID
	}
	return nil
}

func (v *Validator) validateMB(mb int64) error {
	if mb < v.minMB {
		return fmt.Errorf("%w: minimum is %d MB", errs.ErrBelowMinimumMB, v.minMB)
	}
	if mb > entity.MaxRequestMB {
		return fmt.Errorf("%w: maximum is %d MB", errs.ErrInvalidAmount, entity.MaxRequestMB)
	}
	return nil
}
