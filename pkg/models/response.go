package models

import "time"

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ListResponse is the envelope of every list endpoint.
type ListResponse[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// DataResponse wraps a single entity or aggregate.
type DataResponse[T any] struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Data      T          `json:"data"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// FailureResponse is the error body of resource endpoints. Validation
// failures carry Errors, everything else Error.
type FailureResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse is the error body of the auth endpoints and the auth gate.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}
