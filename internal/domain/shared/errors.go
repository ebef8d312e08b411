package shared

import "fmt"

// Error codes shared by every bounded context
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeStorage    = "STORAGE_ERROR"
	CodeDuplicate  = "DUPLICATE_REQUEST"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Field names the offending input for validation errors
	Field string `json:"field,omitempty"`
	err   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.err
}

// Is reports whether target is a DomainError with the same code.
// errors.Is(err, shared.ErrNotFound) therefore matches every not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a field-level validation error
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError reports a missing entity of the given kind
func NewNotFoundError(entity string, id any) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

// NewStorageError wraps a persistence failure
func NewStorageError(op string, err error) *DomainError {
	return &DomainError{
		Code:    CodeStorage,
		Message: "storage failure during " + op,
		err:     err,
	}
}

// Common domain errors
var (
	ErrNotFound   = NewDomainError(CodeNotFound, "Resource not found")
	ErrValidation = NewDomainError(CodeValidation, "Invalid input provided")
	ErrStorage    = NewDomainError(CodeStorage, "Storage unavailable")
	ErrDuplicate  = NewDomainError(CodeDuplicate, "Request already processed")
)
