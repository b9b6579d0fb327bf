package handlers

import (
	"net/http"

	"painel-social/internal/catalog"
	"painel-social/internal/logx"
)

// Handlers holds the handlers that need nothing but a logger and the catalog.
type Handlers struct {
	Logger  logx.Logger
	Catalog *catalog.Catalog
}

// New creates a Handlers instance. A nil logger is replaced by a no-op one.
func New(logger logx.Logger, cat *catalog.Catalog) *Handlers {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Handlers{Logger: logger, Catalog: cat}
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck and returns 204 No Content.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// GetCatalog handles GET /api/catalog.
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		writeError(h.Logger, w, r, http.StatusServiceUnavailable, "catálogo indisponível")
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, h.Catalog)
}

// NotFound returns a JSON 404 error for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "rota não encontrada")
}
