package errors

import (
	"fmt"
)

// AppError is the error shape handlers serialize to clients.
type AppError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails returns a copy carrying extra context for the response body.
// The shared error values stay untouched.
func (e *AppError) WithDetails(reason string) *AppError {
	clone := *e
	clone.Details = map[string]interface{}{"reason": reason}
	return &clone
}
