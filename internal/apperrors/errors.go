package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidAmount indicates a payment amount that is not strictly positive after rounding.
var ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)

// ErrExceedsBalance indicates a payment larger than the remaining balance of a credit.
var ErrExceedsBalance = errors.New("payment exceeds credit balance")

// ErrStorage indicates a transient storage failure (lock timeout, lost connection, deadlock).
// The whole operation may be retried by the caller.
var ErrStorage = errors.New("storage error")

// ErrConflict indicates that the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ExceedsBalanceError carries the balance the caller would need to respect.
type ExceedsBalanceError struct {
	CreditID  int64
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment of %s exceeds balance of %s for credit %d",
		e.Requested.StringFixed(2), e.Balance.StringFixed(2), e.CreditID)
}

// Is lets errors.Is(err, ErrExceedsBalance) match.
func (e *ExceedsBalanceError) Is(target error) bool {
	return target == ErrExceedsBalance
}

// NewExceedsBalanceError builds an ExceedsBalanceError.
func NewExceedsBalanceError(creditID int64, balance, requested decimal.Decimal) *ExceedsBalanceError {
	return &ExceedsBalanceError{CreditID: creditID, Balance: balance, Requested: requested}
}

// AppError is an error with an HTTP-ish status code, used by the repository layer.
type AppError struct {
	Code    int
	Message string
	Err     error
	kind    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel the error was classified as.
func (e *AppError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// NewAppError wraps err with a code and message. Codes >= 500 are classified as ErrInternal.
func NewAppError(code int, message string, err error) *AppError {
	appErr := &AppError{Code: code, Message: message, Err: err}
	switch {
	case code == http.StatusNotFound:
		appErr.kind = ErrNotFound
	case code == http.StatusBadRequest:
		appErr.kind = ErrValidation
	case code == http.StatusConflict:
		appErr.kind = ErrConflict
	case code == http.StatusServiceUnavailable:
		appErr.kind = ErrStorage
	case code >= 500:
		appErr.kind = ErrInternal
	}
	return appErr
}

// NewStorageError wraps a transient storage failure.
func NewStorageError(message string, err error) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, err)
}

// NewNotFoundError returns a not-found error with a specific message.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}
