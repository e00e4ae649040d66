package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/impactchain/npo-governance/pkg/app/errors"
	apphttp "github.com/impactchain/npo-governance/pkg/app/http"
	"github.com/impactchain/npo-governance/pkg/npo"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the read endpoints of the NPO service on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/npos/count", apphttp.HandleError(h.count))
	r.Get("/npos/{address}", apphttp.HandleError(h.getNPO))
	r.Get("/tokens/{id}", apphttp.HandleError(h.getToken))
	r.Get("/tokens/{id}/balances/{address}", apphttp.HandleError(h.getBalance))
	r.Get("/workflows/{id}", apphttp.HandleError(h.getWorkflow))
}

// RegisterWriteRoutes registers the mutating endpoints; callers put them behind auth.
func RegisterWriteRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/npos", apphttp.HandleError(h.register))
}

func (h *HTTP) register(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req npo.RegisterRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	resp, err := h.service.RegisterNPO(r.Context(), &req)
	if err != nil {
		return err
	}

	h.writeJSON(w, http.StatusCreated, resp)
	return nil
}

func (h *HTTP) getNPO(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetNPO(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) count(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetNPOCount(r.Context())
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getToken(w http.ResponseWriter, r *http.Request) error {
	id, err := tokenID(r)
	if err != nil {
		return err
	}
	resp, err := h.service.GetToken(r.Context(), id)
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getBalance(w http.ResponseWriter, r *http.Request) error {
	id, err := tokenID(r)
	if err != nil {
		return err
	}
	resp, err := h.service.GetBalance(r.Context(), id, chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *HTTP) getWorkflow(w http.ResponseWriter, r *http.Request) error {
	resp, err := h.service.GetWorkflow(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	h.writeJSON(w, http.StatusOK, resp)
	return nil
}

func tokenID(r *http.Request) (uint32, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, apperrors.BadRequestError(err, "invalid token id")
	}
	return uint32(id), nil
}

func (h *HTTP) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}
