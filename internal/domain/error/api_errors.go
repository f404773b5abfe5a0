// Package error defines domain-specific errors for the MCA analytics application.
package error

// APIErrorCode defines error codes for generic API failures.
// Format: API-XXYYYY where XX is category and YYYY is specific error.
type APIErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeInvalidRequest APIErrorCode = "API-010001"

	// Throttling errors (03XXXX)
	ErrCodeRateLimited APIErrorCode = "API-030001"

	// Internal errors (99XXXX)
	ErrCodeInternal APIErrorCode = "API-990001"
)
