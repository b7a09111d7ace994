package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a user attribute that failed validation before persistence.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail enforces the 6-254 length window first, then the format.
func ValidateEmail(email string) error {
	if len(email) < 6 || len(email) > 254 {
		return &ValidationError{Field: "email", Message: "Email must be between 6-254 characters"}
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return &ValidationError{Field: "email", Message: "Email format is invalid"}
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}
