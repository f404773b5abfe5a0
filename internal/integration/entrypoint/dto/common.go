// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an API error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageResponse represents a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
