package shared

import "errors"

// DomainError represents a domain-level error with a stable code the
// transport layer can map to a status
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

// Error codes used across the posting engine
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeOverpayment         = "OVERPAYMENT"
	CodeUnbalancedPosting   = "UNBALANCED_POSTING"
	CodeAlreadyVoided       = "ALREADY_VOIDED"
	CodeInvalidState        = "INVALID_STATE"
	CodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
	CodePersistence         = "PERSISTENCE_ERROR"
)

// Common domain errors
var (
	ErrNotFound = NewDomainError(CodeNotFound, "Resource not found")
	// ErrUnbalancedPosting signals a defect in entry construction, not a
	// transient condition; callers must not retry it.
	ErrUnbalancedPosting   = NewDomainError(CodeUnbalancedPosting, "Posting debits and credits do not balance")
	ErrAlreadyVoided       = NewDomainError(CodeAlreadyVoided, "Document has already been voided")
	ErrDuplicateSubmission = NewDomainError(CodeDuplicateSubmission, "Request with this idempotency key was already processed")
)

// NewValidationError creates a validation error with a specific message.
// Validation errors are raised before any transactional work starts.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewOverpaymentError creates an overpayment error with a specific message
func NewOverpaymentError(message string) *DomainError {
	return NewDomainError(CodeOverpayment, message)
}

// AsDomainError extracts a DomainError from an error chain
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries the given domain error code
func HasCode(err error, code string) bool {
	if de, ok := AsDomainError(err); ok {
		return de.Code == code
	}
	return false
}
