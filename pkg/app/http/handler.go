// Package http holds the governor's HTTP plumbing: error rendering, the
// serve loop and per-client throttling.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/impactchain/npo-governance/pkg/app/errors"
)

// HandlerFunc is an http handler that reports failures by returning them.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError adapts h to http.HandlerFunc, rendering returned errors with WriteError.
//
//	r.Post("/npos", apphttp.HandleError(h.register))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			WriteError(w, r, err)
		}
	}
}

// WriteError renders err as an ErrorResponse. Only *apperrors.ServiceError
// messages reach the client; anything else becomes a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{
		Error: "internal error",
		Code:  http.StatusInternalServerError,
	}
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		resp.Error = svcErr.Message
		resp.Code = svcErr.StatusCode()
	}
	if r != nil {
		resp.RequestID = middleware.GetReqID(r.Context())
	}
	WriteJSON(w, resp.Code, &resp)
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
