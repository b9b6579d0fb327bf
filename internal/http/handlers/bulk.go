package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/logx"
	"painel-social/internal/service/bulk"
)

// msgBulkFailed is shown when nothing could be applied.
const msgBulkFailed = "erro ao processar os pedidos"

var errUnknownAction = apperr.Validation(bulk.MsgNoAction)

// BulkHandler applies bulk status transitions to the session selection.
type BulkHandler struct {
	uc         bulkUsecase
	runs       bulkRunReader
	deliverers delivererUsecase
	store      selectionStore
	logger     logx.Logger
}

// NewBulkHandler wires the bulk usecase, the run log, deliverers and the selection store.
func NewBulkHandler(uc bulkUsecase, runs bulkRunReader, deliverers delivererUsecase, store selectionStore, logger logx.Logger) *BulkHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &BulkHandler{uc: uc, runs: runs, deliverers: deliverers, store: store, logger: logger}
}

// Apply handles POST /api/orders/bulk. The body is JSON, or multipart/form-data
// with the same fields ("dates" as a JSON object) plus an optional "file".
//
// On success the selection keeps only the orders that failed, so the operator can retry them.
func (h *BulkHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	req, att, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	action, err := req.toAction(att)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	ids := h.store.Get(sess.ID).IDs()

	// no lookup for an empty selection, the bulk service rejects it first
	if list, ok := action.(domain.InsertIntoListAction); ok && len(ids) > 0 && strings.TrimSpace(req.DeliveryID) != "" {
		d, err := h.deliverers.Find(r.Context(), req.DeliveryID)
		switch {
		case err == nil:
			list.Deliverer = d
			action = list
		case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrInvalid):
			writeError(h.logger, w, r, http.StatusBadRequest, bulk.MsgNoDeliverer)
			return
		default:
			h.logger.Error("deliverer lookup failed", logx.String("req_id", reqID(r.Context())), logx.Err(err))
			writeError(h.logger, w, r, http.StatusBadGateway, msgBulkFailed)
			return
		}
	}

	rep, err := h.uc.Apply(r.Context(), bulk.Request{
		Employee: sess.Employee,
		OrderIDs: ids,
		Action:   action,
	})
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrInvalid):
		writeErr(h.logger, w, r, err)
		return
	default:
		h.logger.Error("bulk apply failed", logx.String("req_id", reqID(r.Context())), logx.Err(err))
		writeError(h.logger, w, r, http.StatusBadGateway, msgBulkFailed)
		return
	}

	if failed := rep.FailedIDs(); len(failed) > 0 {
		h.store.Replace(sess.ID, failed)
	} else {
		h.store.Clear(sess.ID)
	}
	writeJSON(h.logger, w, r, http.StatusOK, rep)
}

// GetRun handles GET /api/bulk/{id}.
func (h *BulkHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "id inválido")
		return
	}
	run, err := h.runs.GetRun(r.Context(), id)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, runToResponse(*run))
}

func (h *BulkHandler) readRequest(w http.ResponseWriter, r *http.Request) (bulkRequest, *domain.Attachment, bool) {
	var req bulkRequest
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		ok := decodeJSON(h.logger, w, r, &req)
		return req, nil, ok
	}

	r.Body = http.MaxBytesReader(w, r.Body, uploadLimit)
	if err := r.ParseMultipartForm(uploadLimit); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "formulário inválido")
		return req, nil, false
	}
	req.Action = r.FormValue("action")
	req.DeliveryID = r.FormValue("deliveryId")
	if raw := strings.TrimSpace(r.FormValue("dates")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Dates); err != nil {
			writeError(h.logger, w, r, http.StatusBadRequest, "datas inválidas")
			return req, nil, false
		}
	}

	file, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, true
	}
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "arquivo inválido")
		return req, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "arquivo inválido")
		return req, nil, false
	}
	return req, &domain.Attachment{
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
