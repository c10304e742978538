package errors

import (
	"errors"
	"fmt"
)

var (
	// State machine errors. ErrInvalidState means the operation is not
	// permitted from the payment's current state; it is raised before any
	// gateway call is attempted.
	ErrInvalidState       = errors.New("operation not allowed in current payment state")
	ErrPreconditionFailed = errors.New("payment precondition failed")

	// Entity errors
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrInvalidAmount         = errors.New("invalid amount")

	// Gateway errors. ErrGatewayUnavailable covers transport failures and
	// timeouts; it is distinct from a decline so callers can decide whether
	// a manual retry is safe. The Payflow protocol has no idempotency key,
	// so nothing in this module ever retries a mutating transaction.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrMalformedResponse  = errors.New("malformed gateway response")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// DeclineError is returned when the gateway processed the transaction and
// answered with a non-approved result code. It carries the code and the
// RESPMSG text so the caller can surface it to the payer or operator.
type DeclineError struct {
	Code    int
	Message string
}

func (e *DeclineError) Error() string {
	return fmt.Sprintf("gateway declined transaction (result %d): %s", e.Code, e.Message)
}

// NewDeclineError creates a new decline error
func NewDeclineError(code int, message string) *DeclineError {
	return &DeclineError{Code: code, Message: message}
}

// IsDecline reports whether err is a gateway decline.
func IsDecline(err error) bool {
	var de *DeclineError
	return errors.As(err, &de)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
