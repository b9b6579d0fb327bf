package handlers

import (
	"net/http"

	"painel-social/internal/logx"
)

// DelivererHandler serves HTTP endpoints for deliverers.
type DelivererHandler struct {
	uc     delivererUsecase
	logger logx.Logger
}

// NewDelivererHandler wires a deliverer usecase into HTTP handlers.
func NewDelivererHandler(uc delivererUsecase, logger logx.Logger) *DelivererHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &DelivererHandler{uc: uc, logger: logger}
}

// List handles GET /api/deliverers.
func (h *DelivererHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context())
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// Create handles POST /api/deliverers.
func (h *DelivererHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req delivererRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	d, err := h.uc.Create(r.Context(), req.Name)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/api/deliverers/"+d.IDDelivery)
	writeJSON(h.logger, w, r, http.StatusCreated, d)
}

// Rename handles PUT /api/deliverers/{id}.
func (h *DelivererHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "id inválido")
		return
	}
	var req delivererRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	d, err := h.uc.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// Delete handles DELETE /api/deliverers/{id}.
func (h *DelivererHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "id inválido")
		return
	}
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
