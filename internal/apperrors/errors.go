// Package apperrors defines the error taxonomy for the aggregation layer.
// A ServiceError means the analytics service failed; a DataError means the
// data we were handed would corrupt output if we kept going. Both propagate
// to the HTTP layer unrecovered — there are no retries in this service.
package apperrors

import (
	"errors"
	"fmt"
)

// ServiceError indicates that the analytics service returned a non-success
// status or was unreachable. StatusCode is the upstream HTTP status, or 0
// when the request never got a response.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("analytics service returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analytics service unreachable: %s", e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewServiceError wraps an upstream failure with its status and message.
func NewServiceError(statusCode int, message string, err error) *ServiceError {
	return &ServiceError{StatusCode: statusCode, Message: message, Err: err}
}

// DataError indicates locally detected malformed input: an empty price
// history, a zero base price, a response shape mismatch, or a symbol that
// cannot be charted or scored at all. Raised eagerly so NaN/Inf never leaks
// into a result.
type DataError struct {
	Message string
	Err     error
}

func (e *DataError) Error() string { return e.Message }

func (e *DataError) Unwrap() error { return e.Err }

// NewDataError builds a DataError with a formatted message.
func NewDataError(format string, args ...interface{}) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...)}
}

// WrapDataError attaches an underlying cause, typically a decode error.
func WrapDataError(err error, format string, args ...interface{}) *DataError {
	return &DataError{Message: fmt.Sprintf(format, args...), Err: err}
}

// IsServiceError reports whether err is (or wraps) a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsDataError reports whether err is (or wraps) a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
