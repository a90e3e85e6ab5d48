package types

import "fmt"

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Validation creates a 400 error for malformed input or business-rule violations
func Validation(message, errorType string) *CustomError {
	return &CustomError{Code: 400, Message: message, Type: errorType}
}

// NotFound creates a 404 error for an absent entity
func NotFound(message, errorType string) *CustomError {
	return &CustomError{Code: 404, Message: message, Type: errorType}
}
