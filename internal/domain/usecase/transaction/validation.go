package transaction

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-processor/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/usecase"
)

// fieldMessages holds the message reported for each field and failed rule
var fieldMessages = map[string]string{
	"amount.gt":     "Amount must be a positive number",
	"currency.min":  "Currency must be at least 3 characters",
	"currency.max":  fmt.Sprintf("Currency must be at most %d characters", entity.MaxCurrencyLength),
	"reference.min": "Reference is required",
	"reference.max": fmt.Sprintf("Reference must be at most %d characters", entity.MaxReferenceLength),
}

var amountBoundsMessage = fmt.Sprintf(
	"Amount must have at most %d integer digits and %d decimal places",
	entity.AmountIntegerDigits, entity.AmountScale,
)

// IntakeValidator checks the shape of a create request before anything touches the store
type IntakeValidator struct {
	validate *validator.Validate
}

// NewIntakeValidator creates a new IntakeValidator
func NewIntakeValidator() *IntakeValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Compare amounts through their sign so gt=0 is exact for any precision
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})

	return &IntakeValidator{validate: v}
}

// Validate returns a *ValidationError describing the first failing field, in
// declaration order (amount, currency, reference), or nil.
func (v *IntakeValidator) Validate(req usecase.CreateTransactionRequest) error {
	// Non-positive amounts are left to the gt=0 rule below
	if req.Amount.Sign() > 0 && !entity.AmountFits(req.Amount) {
		return errs.NewValidationError("amount", amountBoundsMessage)
	}

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewValidationError("", err.Error())
	}

	field := strings.ToLower(fieldErrs[0].Field())
	message, ok := fieldMessages[field+"."+fieldErrs[0].Tag()]
	if !ok {
		message = fieldErrs[0].Error()
	}
	return errs.NewValidationError(field, message)
}

// ValidateID checks the identifier passed to a point lookup
func (v *IntakeValidator) ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValidationError("id", "Transaction ID is required")
	}
	return nil
}
