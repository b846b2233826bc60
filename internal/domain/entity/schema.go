package entity

import (
	"errors"

	"github.com/go-playground/validator/v10"

	errs "github.com/amirhossein-jamali/hotfinet-ledger/internal/domain/error"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateSchema checks struct tags at the write boundary and reports the
// failing fields as a ValidationError.
func validateSchema(entityName string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.ErrInvalidRequest
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}
	return &errs.ValidationError{Entity: entityName, Fields: fields}
}
