package handlers

import (
	"net/http"
	"strings"

	"painel-social/internal/logx"
)

// SelectionHandler exposes the per-session order selection.
type SelectionHandler struct {
	store  selectionStore
	logger logx.Logger
}

// NewSelectionHandler wires a selection store into HTTP handlers.
func NewSelectionHandler(store selectionStore, logger logx.Logger) *SelectionHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &SelectionHandler{store: store, logger: logger}
}

// Get handles GET /api/selection.
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, selectionResponse{IDs: h.store.Get(sess.ID).IDs()})
}

// Clear handles DELETE /api/selection.
func (h *SelectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	h.store.Clear(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// Toggle handles POST /api/selection/toggle.
func (h *SelectionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req toggleRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "id inválido")
		return
	}
	set := h.store.Toggle(sess.ID, id)
	writeJSON(h.logger, w, r, http.StatusOK, selectionResponse{IDs: set.IDs()})
}

// Visible handles POST /api/selection/visible: the header checkbox of the list.
// It selects every visible order, or deselects them all when they already are.
func (h *SelectionHandler) Visible(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	var req visibleRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	visible := make([]string, 0, len(req.VisibleIDs))
	for _, id := range req.VisibleIDs {
		if id = strings.TrimSpace(id); id != "" {
			visible = append(visible, id)
		}
	}
	set := h.store.SelectAllVisible(sess.ID, visible)
	flags := set.Flags(visible)
	writeJSON(h.logger, w, r, http.StatusOK, selectionResponse{IDs: set.IDs(), Flags: &flags})
}
