package engine

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of evaluation failure
type ErrorCode string

const (
	CodeDataUnavailable     ErrorCode = "DATA_UNAVAILABLE"
	CodeInsufficientData    ErrorCode = "INSUFFICIENT_DATA"
	CodeClassifierFailure   ErrorCode = "CLASSIFIER_FAILURE"
	CodeInvalidATR          ErrorCode = "INVALID_ATR"
	CodeInvalidStopDistance ErrorCode = "INVALID_STOP_DISTANCE"
	CodeNoInstrumentSpec    ErrorCode = "NO_INSTRUMENT_SPEC"
	CodeSizingFailed        ErrorCode = "SIZING_FAILED"
	CodeMarketClosed        ErrorCode = "MARKET_CLOSED"
	CodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
)

// EvalError is a typed evaluation failure carrying a human-readable
// suggestion for the caller. The API layer maps codes to HTTP statuses.
type EvalError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"error"`
	Suggestion string    `json:"suggestion"`
	cause      error
}

func (e *EvalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *EvalError) Unwrap() error {
	return e.cause
}

// NewEvalError creates a typed evaluation error
func NewEvalError(code ErrorCode, message, suggestion string, cause error) *EvalError {
	return &EvalError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		cause:      cause,
	}
}

// AsEvalError extracts an EvalError from an error chain
func AsEvalError(err error) (*EvalError, bool) {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr, true
	}
	return nil, false
}
