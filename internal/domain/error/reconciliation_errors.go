// Package error defines domain-specific errors for the MCA analytics application.
package error

import "errors"

// Reconciliation domain errors.
var (
	// ErrNoDealData is returned when the deals snapshot is empty.
	ErrNoDealData = errors.New("no deal data available")

	// ErrNoTransactionData is returned when the transaction snapshot is empty.
	ErrNoTransactionData = errors.New("no transaction data available")
)

// ReconciliationErrorCode defines error codes for reconciliation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type ReconciliationErrorCode string

const (
	// Input errors (01XXXX)
	ErrCodeNoDealData        ReconciliationErrorCode = "REC-010001"
	ErrCodeNoTransactionData ReconciliationErrorCode = "REC-010002"

	// Internal errors (99XXXX)
	ErrCodeReconciliationInternal ReconciliationErrorCode = "REC-990001"
)

// ReconciliationError represents a reconciliation error with code and message.
type ReconciliationError struct {
	Code    ReconciliationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReconciliationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// NewReconciliationError creates a new ReconciliationError with the given code and message.
func NewReconciliationError(code ReconciliationErrorCode, message string, err error) *ReconciliationError {
	return &ReconciliationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
