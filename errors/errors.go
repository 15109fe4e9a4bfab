// Package errors provides unified error handling for the supplysched
// packages. It implements structured error types with machine-readable
// codes, HTTP status mapping for the surrounding handler layer, and
// retryable detection.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// Conflict creates a new AppError for a conflict with the current state of the resource.
func Conflict(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: reason,
		HTTPStatus: http.StatusConflict, Retryable: false,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field},
	}
}

// InvalidDate creates a new AppError for a string that is not a valid
// calendar date in YYYY-MM-DD form.
func InvalidDate(field, value string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidDate, Message: fmt.Sprintf("Invalid date for %s: %q. Expected YYYY-MM-DD.", field, value),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"field": field, "value": value},
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// --- Schedule Graph Constructors ---

// CircularDependency creates a new AppError for a schedule item that never
// resolved because no resolution wave made progress.
func CircularDependency(itemName string) *AppError {
	return &AppError{
		Code:       ErrCodeCircularDependency,
		Message:    fmt.Sprintf("Circular or unresolvable dependency involving schedule item %q.", itemName),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"item": itemName},
	}
}

// DanglingReference creates a new AppError for an anchor that points at a
// nonexistent item.
func DanglingReference(itemName, ref string) *AppError {
	return &AppError{
		Code:       ErrCodeDanglingReference,
		Message:    fmt.Sprintf("Schedule item %q references unknown item %q.", itemName, ref),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"item": itemName, "ref": ref},
	}
}

// --- Propagation Constructors ---

// SupplierFailed creates a new AppError for a supplier that could not be
// processed during a propagation batch.
func SupplierFailed(supplierID string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeSupplierFailed,
		Message:    fmt.Sprintf("Propagation failed for supplier %s.", supplierID),
		HTTPStatus: http.StatusInternalServerError, Retryable: true,
		Details: map[string]any{"supplier_id": supplierID}, Cause: cause,
	}
}

// PropagationStalled creates a new AppError for a cascade that did not
// reach a fixed point within its iteration bound.
func PropagationStalled(iterations int) *AppError {
	return &AppError{
		Code:       ErrCodePropagationStalled,
		Message:    fmt.Sprintf("Propagation did not reach a fixed point after %d iterations.", iterations),
		HTTPStatus: http.StatusConflict, Retryable: true,
		Details: map[string]any{"iterations": iterations},
	}
}
