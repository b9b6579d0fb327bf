package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/service/deliverer"
)

func TestDelivererHandler_List(t *testing.T) {
	t.Parallel()

	uc := &stubDeliverers{listFn: func(context.Context) ([]domain.Deliverer, error) {
		return []domain.Deliverer{{IDDelivery: "d1", Name: "João"}}, nil
	}}
	rr := httptest.NewRecorder()
	NewDelivererHandler(uc, nil).List(rr, httptest.NewRequest(http.MethodGet, "/api/deliverers", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{"idDelivery":"d1","name":"João"}]`, rr.Body.String())
}

func TestDelivererHandler_Create(t *testing.T) {
	t.Parallel()

	uc := &stubDeliverers{createFn: func(_ context.Context, name string) (*domain.Deliverer, error) {
		switch name {
		case "Maria":
			return &domain.Deliverer{IDDelivery: "d2", Name: name}, nil
		case "João":
			return nil, apperr.ErrConflict
		default:
			return nil, apperr.Validation(deliverer.MsgEmptyName)
		}
	}}
	h := NewDelivererHandler(uc, nil)

	post := func(body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/deliverers", strings.NewReader(body)))
		return rr
	}

	rr := post(`{"name":"Maria"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "/api/deliverers/d2", rr.Header().Get("Location"))

	rr = post(`{"name":"João"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, msgConflict, errorOf(t, rr))

	rr = post(`{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, deliverer.MsgEmptyName, errorOf(t, rr))
}

func TestDelivererHandler_RenameAndDelete(t *testing.T) {
	t.Parallel()

	var deleted string
	uc := &stubDeliverers{
		renameFn: func(_ context.Context, id, name string) (*domain.Deliverer, error) {
			return &domain.Deliverer{IDDelivery: id, Name: name}, nil
		},
		deleteFn: func(_ context.Context, id string) error {
			if id == "missing" {
				return apperr.ErrNotFound
			}
			deleted = id
			return nil
		},
	}
	h := NewDelivererHandler(uc, nil)

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/deliverers/d1", strings.NewReader(`{"name":"José"}`)), "id", "d1")
	rr := httptest.NewRecorder()
	h.Rename(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"idDelivery":"d1","name":"José"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.Delete(rr, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/deliverers/d1", nil), "id", "d1"))
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "d1", deleted)

	rr = httptest.NewRecorder()
	h.Delete(rr, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/deliverers/missing", nil), "id", "missing"))
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.Delete(rr, httptest.NewRequest(http.MethodDelete, "/api/deliverers/", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}
