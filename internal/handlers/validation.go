package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators adds the decimal rules used by request DTOs to gin's validator.
// Rules read decimal.Decimal fields directly; a custom type func returning the same type
// would recurse.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// dgt0: decimal strictly greater than zero.
	if err := v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && d.IsPositive()
	}); err != nil {
		return fmt.Errorf("failed to register dgt0: %w", err)
	}

	// dgte0: decimal greater than or equal to zero.
	if err := v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && !d.IsNegative()
	}); err != nil {
		return fmt.Errorf("failed to register dgte0: %w", err)
	}
	return nil
}
