package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"painel-social/internal/apperr"
	"painel-social/internal/catalog"
	"painel-social/internal/domain"
	"painel-social/internal/logx"
	"painel-social/internal/service/orderlist"
	"painel-social/internal/service/selection"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type listBody struct {
	VisibleIDs     []string `json:"visibleIds"`
	HiddenSelected []string `json:"hiddenSelected"`
}

func TestOrderHandler_List_ParsesFilterAndPassesSelection(t *testing.T) {
	t.Parallel()

	store := selection.NewStore()
	store.Toggle(testSession.ID, "a")

	view := &stubOrderView{buildFn: func(_ context.Context, f orderlist.Filter, selected selection.Set) (*orderlist.Result, error) {
		require.Equal(t, orderlist.Filter{
			Servico:  "Feira",
			Mes:      3,
			Ano:      2024,
			Bairro:   "Centro",
			Situacao: domain.KindWaiting,
		}, f)
		require.True(t, selected.Has("a"))
		return &orderlist.Result{VisibleIDs: []string{"a"}, HiddenSelected: []string{}}, nil
	}}
	h := NewOrderHandler(view, &stubHistory{}, store, logx.Nop(), OrderOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders?servico=Feira&mes=3&ano=2024&bairro=Centro&situacao=Aguardando", nil)
	rr := httptest.NewRecorder()
	h.List(rr, authed(req))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"a"}, decodeBody[listBody](t, rr).VisibleIDs)
}

func TestOrderHandler_List_DefaultsToCurrentLocalMonth(t *testing.T) {
	t.Parallel()

	brt := time.FixedZone("BRT", -3*60*60)
	var got orderlist.Filter
	view := &stubOrderView{buildFn: func(_ context.Context, f orderlist.Filter, _ selection.Set) (*orderlist.Result, error) {
		got = f
		return &orderlist.Result{}, nil
	}}
	h := NewOrderHandler(view, &stubHistory{}, selection.NewStore(), nil, OrderOptions{Location: brt})
	h.now = func() time.Time { return time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC) }

	rr := httptest.NewRecorder()
	h.List(rr, authed(httptest.NewRequest(http.MethodGet, "/api/orders?servico=Feira", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 2, got.Mes)
	require.Equal(t, 2024, got.Ano)
}

func TestOrderHandler_List_SelectionScope(t *testing.T) {
	t.Parallel()

	for _, prune := range []bool{false, true} {
		store := selection.NewStore()
		store.Replace(testSession.ID, []string{"a", "z"})

		view := &stubOrderView{buildFn: func(_ context.Context, _ orderlist.Filter, selected selection.Set) (*orderlist.Result, error) {
			return &orderlist.Result{
				VisibleIDs:     []string{"a", "b"},
				HiddenSelected: selected.Hidden([]string{"a", "b"}),
			}, nil
		}}
		h := NewOrderHandler(view, &stubHistory{}, store, nil, OrderOptions{PruneOnFilter: prune})

		rr := httptest.NewRecorder()
		h.List(rr, authed(httptest.NewRequest(http.MethodGet, "/api/orders?servico=Feira", nil)))
		require.Equal(t, http.StatusOK, rr.Code)

		body := decodeBody[listBody](t, rr)
		if prune {
			require.Empty(t, body.HiddenSelected)
			require.Equal(t, []string{"a"}, store.Get(testSession.ID).IDs())
		} else {
			require.Equal(t, []string{"z"}, body.HiddenSelected)
			require.Equal(t, []string{"a", "z"}, store.Get(testSession.ID).IDs())
		}
	}
}

func TestOrderHandler_List_BadQuery(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Load("")
	require.NoError(t, err)
	h := NewOrderHandler(&stubOrderView{}, &stubHistory{}, selection.NewStore(), nil, OrderOptions{Catalog: cat})

	servico := "servico=" + url.QueryEscape(cat.Servicos[0])
	cases := []struct {
		target string
		msg    string
	}{
		{"/api/orders", msgBadServico},
		{"/api/orders?servico=Inexistente", msgBadServico},
		{"/api/orders?" + servico + "&mes=13", msgBadMes},
		{"/api/orders?" + servico + "&ano=x", msgBadAno},
		{"/api/orders?" + servico + "&situacao=perdido", msgBadSituacao},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		h.List(rr, authed(httptest.NewRequest(http.MethodGet, tc.target, nil)))
		require.Equal(t, http.StatusBadRequest, rr.Code, tc.target)
		require.Equal(t, tc.msg, errorOf(t, rr), tc.target)
	}
}

func TestOrderHandler_List_UpstreamError(t *testing.T) {
	t.Parallel()

	view := &stubOrderView{buildFn: func(context.Context, orderlist.Filter, selection.Set) (*orderlist.Result, error) {
		return nil, apperr.ErrUpstream
	}}
	h := NewOrderHandler(view, &stubHistory{}, selection.NewStore(), nil, OrderOptions{})

	rr := httptest.NewRecorder()
	h.List(rr, authed(httptest.NewRequest(http.MethodGet, "/api/orders?servico=Feira", nil)))
	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestOrderHandler_History(t *testing.T) {
	t.Parallel()

	delivered := time.Date(2024, 3, 9, 3, 0, 0, 0, time.UTC)
	hist := &stubHistory{historyFn: func(_ context.Context, id string) ([]domain.StatusChange, error) {
		require.Equal(t, "ord-1", id)
		return []domain.StatusChange{{
			OrderID:      "ord-1",
			Situacao:     domain.Finalized(),
			DataEntregue: &delivered,
			EmployeeID:   "emp-1",
			BulkID:       "bulk-1",
			ChangedAt:    delivered,
		}}, nil
	}}
	h := NewOrderHandler(&stubOrderView{}, hist, selection.NewStore(), nil, OrderOptions{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/orders/ord-1/history", nil), "id", "ord-1")
	rr := httptest.NewRecorder()
	h.History(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{
		"orderId": "ord-1",
		"entries": [{
			"situacao": "Finalizado",
			"dataEntregue": "2024-03-09T03:00:00Z",
			"employeeId": "emp-1",
			"bulkId": "bulk-1",
			"changedAt": "2024-03-09T03:00:00Z"
		}]
	}`, rr.Body.String())
}
