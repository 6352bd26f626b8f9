// Package nebulaerrors provides structured error handling for nebula-jdbc with
// categorized error types, key/value details and stack traces.
//
// # Overview
//
// Every failure raised while resolving table options is an *Error whose Type
// tells the caller what went wrong without parsing the message:
//   - ErrorTypeMissingOption: a required option key was not supplied
//   - ErrorTypeUnsupportedOption: a key is not recognized by the factory
//   - ErrorTypeInvalidOption: a value could not be decoded to its declared type
//   - ErrorTypeUnresolvedDialect: no dialect can handle the connection URL
//   - ErrorTypeIncompleteOptionGroup: an all-or-none group is partially set
//   - ErrorTypeInvalidRange: a lower bound exceeds its upper bound
//   - ErrorTypeNegativeValue: a must-be-non-negative option is negative
//
// # Basic Usage
//
//	err := nebulaerrors.New(nebulaerrors.ErrorTypeNegativeValue, "sink.max-retries is negative").
//	    WithDetail("key", "sink.max-retries").
//	    WithDetail("value", -1)
//
//	if nebulaerrors.IsType(err, nebulaerrors.ErrorTypeNegativeValue) {
//	    // reject the table definition
//	}
//
// Wrapping keeps the original category observable: IsType walks the whole
// cause chain, not only the outermost error.
//
// # Thread Safety
//
// Error instances are not safe for concurrent modification. Finish calling
// WithDetail before sharing an error across goroutines.
package nebulaerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error, used for error handling strategies,
// monitoring labels and CLI exit reporting.
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents generic validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents resource not found errors
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict represents conflict errors such as duplicate registration
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"

	// ErrorTypeMissingOption represents a required option that was not supplied
	ErrorTypeMissingOption ErrorType = "missing_option"
	// ErrorTypeUnsupportedOption represents an option key the factory does not recognize
	ErrorTypeUnsupportedOption ErrorType = "unsupported_option"
	// ErrorTypeInvalidOption represents an option value that cannot be decoded
	ErrorTypeInvalidOption ErrorType = "invalid_option"
	// ErrorTypeUnresolvedDialect represents a connection URL no dialect can handle
	ErrorTypeUnresolvedDialect ErrorType = "unresolved_dialect"
	// ErrorTypeIncompleteOptionGroup represents a partially populated all-or-none group
	ErrorTypeIncompleteOptionGroup ErrorType = "incomplete_option_group"
	// ErrorTypeInvalidRange represents a lower bound larger than its upper bound
	ErrorTypeInvalidRange ErrorType = "invalid_range"
	// ErrorTypeNegativeValue represents a negative value for a non-negative option
	ErrorTypeNegativeValue ErrorType = "negative_value"
)

// Error represents a structured error with context.
//
// Fields:
//   - Type: Categorizes the error
//   - Message: Human-readable error description
//   - Cause: The underlying error that caused this error
//   - Details: Key-value pairs such as the offending option keys and values
//   - Stack: Call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning the type, the message and
// the cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling compatibility with errors.Is
// and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. It can be chained.
//
// Example:
//
//	err := nebulaerrors.New(ErrorTypeInvalidRange, "bounds out of order").
//	    WithDetail("lower", 100).
//	    WithDetail("upper", 1)
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, capturing the call
// stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf is New with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the original
// error as the cause. If the error is already a structured Error, its stack
// trace is preserved. Returns nil if the input error is nil.
//
// Example:
//
//	src, err := factory.CreateTableSource(ctx)
//	if err != nil {
//	    return nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeConfig, "failed to create table source").
//	        WithDetail("connector", factory.FactoryIdentifier())
//	}
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType reports whether err, or any *Error in its cause chain, has the given type.
//
// Example:
//
//	if nebulaerrors.IsType(err, nebulaerrors.ErrorTypeIncompleteOptionGroup) {
//	    fmt.Println(nebulaerrors.Keys(err))
//	}
func IsType(err error, errType ErrorType) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Type == errType {
			return true
		}
		err = e.Cause
	}
	return false
}

// TypeOf returns the type of the innermost *Error in the chain, which is the
// most specific category. It returns "" when err carries no *Error.
func TypeOf(err error) ErrorType {
	var found ErrorType
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		found = e.Type
		err = e.Cause
	}
	return found
}

// Keys returns the option keys recorded under the "keys" detail of the
// innermost *Error that carries them.
func Keys(err error) []string {
	var keys []string
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		if k, ok := e.Details["keys"].([]string); ok {
			keys = k
		}
		err = e.Cause
	}
	return keys
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
