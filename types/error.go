package types

import "fmt"

// ErrorCode represents a unified error code across the module.
type ErrorCode string

const (
	// ErrModelNotFound: the caller named a model absent from the registry.
	ErrModelNotFound ErrorCode = "MODEL_NOT_FOUND"
	// ErrBackendNotReady: an exact token sequence was requested before the
	// model's backend reached Ready.
	ErrBackendNotReady ErrorCode = "BACKEND_NOT_READY"
	// ErrVocabLoadFailed: backend-specific vocabulary acquisition failed.
	ErrVocabLoadFailed ErrorCode = "VOCAB_LOAD_FAILED"
	// ErrInvalidConfig: the configuration file could not be applied.
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Error represents a structured error with code, message, and metadata.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Model   string    `json:"model,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithModel sets the model name the error relates to.
func (e *Error) WithModel(model string) *Error {
	e.Model = model
	return e
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
