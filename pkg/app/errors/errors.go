// Package errors defines the service-boundary error type the governor API
// renders: a category that selects the HTTP status, a client-facing message
// and the wrapped cause that only reaches the logs.
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a ServiceError.
type Category int

const (
	// CategoryGeneralError is an unexpected failure inside the service.
	CategoryGeneralError Category = iota
	// CategoryDataError is invalid input, or a request the contract rejected.
	CategoryDataError
	// CategoryUnauthorized is a missing or invalid operator token.
	CategoryUnauthorized
	// CategoryResourceNotFound is an unknown organization, token or workflow.
	CategoryResourceNotFound
	// CategoryRateLimited is a client over its request budget.
	CategoryRateLimited
	// CategoryLocked is a coordinator already running a workflow.
	CategoryLocked
	// CategoryDependencyFailure is a failing contract chain, ledger or signer.
	CategoryDependencyFailure
	// CategoryRecovering is a coordinator without its sessions yet.
	CategoryRecovering
)

var categories = map[Category]struct {
	name   string
	status int
}{
	CategoryGeneralError:      {"CategoryGeneralError", http.StatusInternalServerError},
	CategoryDataError:         {"CategoryDataError", http.StatusBadRequest},
	CategoryUnauthorized:      {"CategoryUnauthorized", http.StatusUnauthorized},
	CategoryResourceNotFound:  {"CategoryResourceNotFound", http.StatusNotFound},
	CategoryRateLimited:       {"CategoryRateLimited", http.StatusTooManyRequests},
	CategoryLocked:            {"CategoryLocked", http.StatusLocked},
	CategoryDependencyFailure: {"CategoryDependencyFailure", http.StatusBadGateway},
	CategoryRecovering:        {"CategoryRecovering", http.StatusServiceUnavailable},
}

func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return categories[CategoryGeneralError].name
}

// ServiceError is returned by every service method.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

func (err ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

func (err ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode maps the category to an HTTP status.
func (err ServiceError) StatusCode() int {
	if info, ok := categories[err.Category]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Is reports whether err is a ServiceError of category cat.
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

// IsInternalError reports whether err is a server-side failure rather than a
// problem with the request.
func IsInternalError(err error) bool {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return true
	}
	switch svcErr.Category {
	case CategoryDataError, CategoryUnauthorized, CategoryResourceNotFound, CategoryRateLimited, CategoryLocked:
		return false
	default:
		return true
	}
}

func newError(cat Category, err error, message string) error {
	if err == nil {
		err = errors.New(message)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "internal error".
func GeneralError(err error) error {
	return newError(CategoryGeneralError, err, "internal error")
}

// BadRequestError returns message to the client; err is only logged.
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message)
}

func UnAuthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, err, message)
}

func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message)
}

func RateLimitedError(err error, message string) error {
	return newError(CategoryRateLimited, err, message)
}

func LockedError(err error, message string) error {
	return newError(CategoryLocked, err, message)
}

func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message)
}

func UnavailableError(err error, message string) error {
	return newError(CategoryRecovering, err, message)
}
