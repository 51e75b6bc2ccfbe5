package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	ECONFLICT = "conflict"  // 409 - Remote version mismatch, caller must re-read
	EINTERNAL = "internal"  // 500 - Internal or bad-upstream-data error (hide details)
	EINVALID  = "invalid"   // 400 - Validation error or illegal state transition
	ENOTFOUND = "not_found" // 404 - Resource not found
)

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ENOTFOUND).
	Code string

	// Message is a human-readable error message safe to show to callers.
	Message string

	// Op is the operation where the error occurred (e.g., "cart.attachPayment").
	// Used for logging, not shown to callers.
	Op string

	// Err is the underlying error, if any. Used for error wrapping.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a domain error with the same code and message.
// Lets the orchestrator wrap the pre-defined payment state errors with
// operation context while callers still match them with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for nil or non-domain errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a caller-facing message from an error.
// For internal errors, returns a generic message to avoid leaking details.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return "An internal error occurred. Please try again later."
		}
		return e.Message
	}

	return "An internal error occurred. Please try again later."
}

// ErrorOp extracts the operation from an error (for logging).
func ErrorOp(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}

	return ""
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// NotFound creates a not found error for a resource.
// Example: domain.NotFound("cart.get", "cart", cartID)
func NotFound(op, resource, identifier string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
	}
}

// Invalid creates a validation error for a single issue.
// Example: domain.Invalid("cart.attachPayment", "missing cart id")
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// Conflict creates a conflict error. Used when the remote store rejects a
// mutation because the supplied version is stale; the caller must re-read
// and retry with fresh state.
func Conflict(op, message string) error {
	return &Error{
		Code:    ECONFLICT,
		Op:      op,
		Message: message,
	}
}

// Internal creates an internal error (wraps underlying error).
// The message shown to callers will be generic; the underlying error is for logging.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Pre-defined cart payment state errors. The orchestrator wraps these with
// operation context; callers match them with errors.Is.
var (
	// ErrPaymentAlreadySet indicates an attach attempt under the single-payment
	// policy when the cart already carries a payment.
	ErrPaymentAlreadySet = &Error{
		Code:    EINVALID,
		Message: "A payment is already set on the cart",
	}

	// ErrPaymentUnset indicates a remove attempt when no matching payment
	// is associated with the cart.
	ErrPaymentUnset = &Error{
		Code:    EINVALID,
		Message: "No payment is set on the cart",
	}
)

// MissingProperty creates an error for a structurally required field absent
// from upstream data. Mapping never substitutes a default for such a field.
func MissingProperty(op, property string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: fmt.Sprintf("%s missing for commercetools resource", property),
		Err:     errMissingProperty,
	}
}

// IsMissingProperty reports whether err was produced by MissingProperty.
func IsMissingProperty(err error) bool {
	return errors.Is(err, errMissingProperty)
}

var errMissingProperty = errors.New("missing property")
