package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials or session token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the acting user lacks rights over the resource.
var ErrForbidden = errors.New("forbidden")

// ErrSessionExpired indicates a session token whose expiry instant has passed.
var ErrSessionExpired = errors.New("session expired")

// ErrInsufficientFunds indicates a transfer exceeding the source account balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrConflict indicates a transient optimistic-update conflict; callers may retry.
var ErrConflict = errors.New("concurrent update conflict")

// ErrCorruptCredential indicates a stored password digest that cannot be parsed.
var ErrCorruptCredential = errors.New("corrupt credential digest")

// ErrProvisioningExhausted indicates account number generation ran out of attempts.
var ErrProvisioningExhausted = errors.New("account number generation exhausted")

// AppError wraps an underlying error with an HTTP-ish status code and a
// message that is safe to log. Handlers never echo the wrapped cause to clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
