package utils

import "fmt"

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func NewRequestError(err error) *APIError {
	return &APIError{
		Code:    1001,
		Message: "invalid request",
		Details: err.Error(),
	}
}

func NewClusterNotFoundError(name string) *APIError {
	return &APIError{
		Code:    2001,
		Message: "named cluster not found",
		Details: name,
	}
}

func NewValidationError(field string, value interface{}) *APIError {
	return &APIError{
		Code:    3001,
		Message: fmt.Sprintf("invalid %s", field),
		Details: fmt.Sprintf("invalid value: %v", value),
	}
}

func NewUploadError(err error) *APIError {
	return &APIError{
		Code:    4001,
		Message: "failed to read upload",
		Details: err.Error(),
	}
}

func NewSystemError(err error) *APIError {
	return &APIError{
		Code:    5001,
		Message: "internal error",
		Details: err.Error(),
	}
}
