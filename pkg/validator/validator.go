package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// PhoneRegex accepts an international number (+ and 10 to 15 digits)
	// or a local DDD-DDD-DDDD number.
	PhoneRegex = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)
)

// Validator validates structs and single values.
type Validator interface {
	// Validate validates the given struct
	Validate(s any) error
	// Var validates a single value against a tag, e.g. "email".
	Var(value any, tag string) error
}

type DefaultValidator struct {
	v *validator.Validate
}

// NewDefaultValidator creates a new default validator.
// It returns a new DefaultValidator and an error if the validator registration fails.
func NewDefaultValidator() (*DefaultValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		return nil, fmt.Errorf("register phone validator: %w", err)
	}

	return &DefaultValidator{v: v}, nil
}

// MustNewDefaultValidator is like NewDefaultValidator but panics on error.
func MustNewDefaultValidator() *DefaultValidator {
	v, err := NewDefaultValidator()
	if err != nil {
		panic(err)
	}
	return v
}

func (v DefaultValidator) Validate(s any) error {
	return v.v.Struct(s)
}

func (v DefaultValidator) Var(value any, tag string) error {
	return v.v.Var(value, tag)
}

// IsValidationError checks if the given error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func ValidationErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be +DDDDDDDDDD (10-15 digits) or DDD-DDD-DDDD"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return "is invalid"
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return PhoneRegex.MatchString(fl.Field().String())
}
