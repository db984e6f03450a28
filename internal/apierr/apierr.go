package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeTransactionFailed = "TRANSACTION_FAILED"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// UserNotFound marks a customer or merchant identity that does not resolve.
func UserNotFound() *Error {
	return New(http.StatusBadRequest, CodeUserNotFound, errors.New("user does not exist"))
}

// NotFound marks a referenced entity or association that does not exist.
// kind names the entity for the caller ("Voucher", "Ingredient", ...).
func NotFound(kind string) *Error {
	return New(http.StatusBadRequest, CodeNotFound, fmt.Errorf("%s does not exist", kind))
}

// AlreadyExists marks a duplicate insertion into a deduplicated set.
func AlreadyExists(kind string) *Error {
	return New(http.StatusBadRequest, CodeAlreadyExists, fmt.Errorf("%s already exists", kind))
}

// TransactionFailed marks an infrastructure fault during an atomic commit.
// Callers should retry the whole operation rather than treat it as a
// business rule violation.
func TransactionFailed(err error) *Error {
	return New(http.StatusInternalServerError, CodeTransactionFailed, fmt.Errorf("transaction failed: %w", err))
}

func hasCode(err error, code string) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func IsUserNotFound(err error) bool      { return hasCode(err, CodeUserNotFound) }
func IsNotFound(err error) bool          { return hasCode(err, CodeNotFound) }
func IsAlreadyExists(err error) bool     { return hasCode(err, CodeAlreadyExists) }
func IsTransactionFailed(err error) bool { return hasCode(err, CodeTransactionFailed) }
