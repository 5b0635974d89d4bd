package app

import (
	"errors"
	"fmt"
)

// Output formats for rendering command responses
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// OutputFormats lists the accepted --output values
var OutputFormats = []string{OutputTable, OutputJSON, OutputYAML}

// ValidateOutputFormat checks an --output value
func ValidateOutputFormat(format string) error {
	for _, f := range OutputFormats {
		if f == format {
			return nil
		}
	}
	return NewError(ErrCodeInvalidInput, fmt.Sprintf("unsupported output format: %s", format), nil)
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeUnknownFormat = "UNKNOWN_FORMAT"
	ErrCodeCodec         = "CODEC"
	ErrCodeIO            = "IO"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode returns the code of the first CommonError in err's chain, or ""
func ErrorCode(err error) string {
	var ce *CommonError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
