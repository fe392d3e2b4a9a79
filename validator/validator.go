// Package validator checks configuration structs against their `validate`
// tags, reporting every failing field with a readable message.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// mongoSchemes are the URI schemes accepted by the MongoDB driver.
var mongoSchemes = map[string]bool{
	"mongodb":     true,
	"mongodb+srv": true,
}

// Validator is a wrapper around the go-playground/validator package.
type Validator struct {
	validator *validator.Validate
}

// ValidationError represents an individual validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a slice of ValidationError.
type ValidationErrors []ValidationError

// Error returns a string representation of the validation errors.
func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// New creates a new Validator instance.
func New() *Validator {
	v := validator.New()
	// Register custom validation functions
	_ = v.RegisterValidation("mongoscheme", validateMongoScheme)
	return &Validator{
		validator: v,
	}
}

// Validate validates a struct using the validator package. Field failures are
// returned as ValidationErrors.
func (v *Validator) Validate(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	validationErrors := make(ValidationErrors, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldErr.Field(),
			Message: errorMessage(fieldErr),
		})
	}
	return validationErrors
}

// validateMongoScheme validates a MongoDB URI scheme.
func validateMongoScheme(fl validator.FieldLevel) bool {
	return mongoSchemes[fl.Field().String()]
}

// errorMessage returns a human-readable error message for a validation error.
func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "url":
		return "invalid URL format"
	case "mongoscheme":
		return "must be mongodb or mongodb+srv"
	default:
		return fmt.Sprintf("invalid value: %s", err.Tag())
	}
}
