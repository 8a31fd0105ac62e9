package dto

import "net/http"

// Error code constants exposed on the wire. These mirror the domain error
// codes so clients can react to stable identifiers.

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "PERSISTENCE_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// Domain error codes
const (
	// ErrCodeValidation is used when request data fails validation
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeOverpayment is used when a payment exceeds the outstanding amount
	ErrCodeOverpayment = "OVERPAYMENT"
	// ErrCodeUnbalancedPosting is used when a movement set does not balance
	ErrCodeUnbalancedPosting = "UNBALANCED_POSTING"
	// ErrCodeAlreadyVoided is used when voiding an already voided document
	ErrCodeAlreadyVoided = "ALREADY_VOIDED"
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeDuplicateSubmission is used when an idempotency key was already used
	ErrCodeDuplicateSubmission = "DUPLICATE_SUBMISSION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound: http.StatusNotFound,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeOverpayment:   http.StatusUnprocessableEntity,
	ErrCodeAlreadyVoided: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:  http.StatusUnprocessableEntity,

	// Duplicate submissions -> 409 Conflict
	ErrCodeDuplicateSubmission: http.StatusConflict,

	// An unbalanced set is a server-side defect, never a client error
	ErrCodeUnbalancedPosting: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
