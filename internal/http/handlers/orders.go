package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"painel-social/internal/apperr"
	"painel-social/internal/catalog"
	"painel-social/internal/domain"
	"painel-social/internal/logx"
	"painel-social/internal/service/orderlist"
)

const (
	msgBadServico  = "serviço inválido"
	msgBadMes      = "mês inválido"
	msgBadAno      = "ano inválido"
	msgBadSituacao = "situação inválida"
)

// OrderOptions tunes the order list endpoint.
type OrderOptions struct {
	// PruneOnFilter drops selected ids that are not visible under the current filter.
	PruneOnFilter bool
	Location      *time.Location
	Catalog       *catalog.Catalog
}

// OrderHandler serves the order list and the order timeline.
type OrderHandler struct {
	view    orderView
	history historyReader
	store   selectionStore
	logger  logx.Logger
	opts    OrderOptions
	now     func() time.Time
}

// NewOrderHandler wires the order list view, the timeline and the selection store.
func NewOrderHandler(view orderView, history historyReader, store selectionStore, logger logx.Logger, opts OrderOptions) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &OrderHandler{view: view, history: history, store: store, logger: logger, opts: opts, now: time.Now}
}

// List handles GET /api/orders?servico=&mes=&ano=&bairro=&situacao=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	f, err := h.parseFilter(r)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}

	res, err := h.view.Build(r.Context(), f, h.store.Get(sess.ID))
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	if h.opts.PruneOnFilter && len(res.HiddenSelected) > 0 {
		h.store.Prune(sess.ID, res.VisibleIDs)
		h.logger.Debug("selection pruned",
			logx.String("req_id", reqID(r.Context())),
			logx.Int("dropped", len(res.HiddenSelected)),
		)
		res.HiddenSelected = []string{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// History handles GET /api/orders/{id}/history.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "id inválido")
		return
	}
	list, err := h.history.History(r.Context(), id)
	if err != nil {
		writeErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, historyToResponse(id, list))
}

// parseFilter reads the list filter. Month and year default to the current ones.
func (h *OrderHandler) parseFilter(r *http.Request) (orderlist.Filter, error) {
	q := r.URL.Query()
	today := h.now().In(h.opts.Location)

	f := orderlist.Filter{
		Servico: strings.TrimSpace(q.Get("servico")),
		Mes:     int(today.Month()),
		Ano:     today.Year(),
		Bairro:  strings.TrimSpace(q.Get("bairro")),
	}
	if f.Servico == "" || (h.opts.Catalog != nil && !h.opts.Catalog.HasServico(f.Servico)) {
		return f, apperr.Validation(msgBadServico)
	}
	if s := q.Get("mes"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			return f, apperr.Validation(msgBadMes)
		}
		f.Mes = v
	}
	if s := q.Get("ano"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 2000 || v > 9999 {
			return f, apperr.Validation(msgBadAno)
		}
		f.Ano = v
	}
	if s := strings.TrimSpace(q.Get("situacao")); s != "" {
		kind, ok := domain.ParseSituacaoKind(s)
		if !ok {
			return f, apperr.Validation(msgBadSituacao)
		}
		f.Situacao = kind
	}
	return f, nil
}
