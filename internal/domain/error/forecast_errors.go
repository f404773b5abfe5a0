// Package error defines domain-specific errors for the MCA analytics application.
package error

import "errors"

// Forecast domain errors.
var (
	// ErrInvalidPeriodUnit is returned when the forecast granularity is not weekly or monthly.
	ErrInvalidPeriodUnit = errors.New("period unit must be: weekly or monthly")

	// ErrInvalidHorizon is returned when the forecast horizon is not positive.
	ErrInvalidHorizon = errors.New("forecast horizon must be positive")

	// ErrNegativeStartingCash is returned when starting cash is negative.
	ErrNegativeStartingCash = errors.New("starting cash must not be negative")
)

// ForecastErrorCode defines error codes for forecast errors.
// Format: FCT-XXYYYY where XX is category and YYYY is specific error.
type ForecastErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriodUnit    ForecastErrorCode = "FCT-010001"
	ErrCodeInvalidHorizon       ForecastErrorCode = "FCT-010002"
	ErrCodeNegativeStartingCash ForecastErrorCode = "FCT-010003"

	// Internal errors (99XXXX)
	ErrCodeForecastInternal ForecastErrorCode = "FCT-990001"
)

// ForecastError represents a forecast error with code and message.
type ForecastError struct {
	Code    ForecastErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ForecastError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ForecastError) Unwrap() error {
	return e.Err
}

// NewForecastError creates a new ForecastError with the given code and message.
func NewForecastError(code ForecastErrorCode, message string, err error) *ForecastError {
	return &ForecastError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
