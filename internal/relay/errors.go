package relay

import "fmt"

// ValidationError describes a malformed or missing inbound webhook field.
// It maps to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IntegrationError records a failed external provider call. Integration
// failures are values aggregated into the response, never control flow: one
// failing provider must not prevent the remaining side effects.
type IntegrationError struct {
	Integration string
	Err         error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s integration failed: %v", e.Integration, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}
