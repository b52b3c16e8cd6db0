package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Detail  string   `json:"detail,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func (e *CustomError) Error() string {
	switch {
	case len(e.Errors) > 0:
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	default:
		return e.Message
	}
}

// Common error constructors
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewValidationError collects every field-level message of a rejected write.
func NewValidationError(messages ...string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  messages,
	}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

// AsCustomError unwraps err into a *CustomError when one is present in the chain.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsValidation reports whether err carries a list of field messages.
func IsValidation(err error) bool {
	ce, ok := AsCustomError(err)
	return ok && len(ce.Errors) > 0
}
