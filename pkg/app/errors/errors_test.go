package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{BadRequestError(nil, "bad"), http.StatusBadRequest},
		{UnAuthorizedError(nil, "who"), http.StatusUnauthorized},
		{ResourceNotFoundError(nil, "gone"), http.StatusNotFound},
		{RateLimitedError(nil, "slow down"), http.StatusTooManyRequests},
		{LockedError(nil, "busy"), http.StatusLocked},
		{DependencyError(nil, "ledger"), http.StatusBadGateway},
		{UnavailableError(nil, "not ready"), http.StatusServiceUnavailable},
		{GeneralError(nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		var svcErr *ServiceError
		if !errors.As(tt.err, &svcErr) {
			t.Fatalf("%v is not a ServiceError", tt.err)
		}
		if got := svcErr.StatusCode(); got != tt.want {
			t.Errorf("%s: status = %d, want %d", svcErr.Category, got, tt.want)
		}
	}
}

func TestIsAndUnwrap(t *testing.T) {
	cause := errors.New("registry reverted")
	err := fmt.Errorf("register: %w", BadRequestError(cause, "registration rejected"))

	if !Is(err, CategoryDataError) {
		t.Fatal("expected CategoryDataError")
	}
	if Is(err, CategoryLocked) {
		t.Fatal("unexpected CategoryLocked")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
}

func TestIsInternalError(t *testing.T) {
	if IsInternalError(LockedError(nil, "busy")) {
		t.Fatal("locked is a client-side condition")
	}
	if !IsInternalError(DependencyError(nil, "ledger down")) {
		t.Fatal("dependency failure is internal")
	}
	if !IsInternalError(errors.New("plain")) {
		t.Fatal("plain errors are internal")
	}
}
