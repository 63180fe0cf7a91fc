package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error scoped to a single field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrRateNotFound  = NewDomainError("RATE_NOT_FOUND", "No rate table matches the requested platform/service")
	ErrNoRatesLoaded = NewDomainError("NO_RATES_LOADED", "No rate version has been loaded yet")
	ErrReloadFailed  = NewDomainError("RELOAD_FAILED", "Rate reload failed; previous version remains active")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
