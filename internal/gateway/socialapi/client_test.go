package socialapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, nil)
}

func TestClient_UpdateOrder_SendsBodyAndBearer(t *testing.T) {
	t.Parallel()

	var (
		gotPath string
		gotAuth string
		gotBody map[string]any
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"o1"}`))
	})

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ctx := WithToken(context.Background(), "tok")
	err := c.UpdateOrder(ctx, "o1", UpdateOrderBody{
		Usuario:      "e1",
		Situacao:     domain.Finalized(),
		DataEntregue: &day,
	})
	require.NoError(t, err)

	assert.Equal(t, "PUT /orders/o1", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "e1", gotBody["usuario"])
	assert.Equal(t, "Finalizado", gotBody["situacao"])
	assert.Equal(t, "2024-03-01T00:00:00Z", gotBody["dataEntregue"])
	_, hasImage := gotBody["imageUrl"]
	assert.False(t, hasImage, "imageUrl must be omitted without attachment")
}

func TestClient_NoTokenNoAuthorizationHeader(t *testing.T) {
	t.Parallel()

	var gotAuth []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListDeliverers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ListOrders_Query(t *testing.T) {
	t.Parallel()

	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":"o1","userId":"u1","servico":"Aração","situacao":"Lista João","data":"2024-03-01T10:00:00Z","dataEntregue":null}]`))
	})

	orders, err := c.ListOrders(context.Background(), domain.OrderFilter{Servico: "Aração", Mes: 3, Ano: 2024})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ano=2024&mes=3&servico=Ara%C3%A7%C3%A3o", gotQuery)
	assert.Equal(t, domain.KindListed, orders[0].Situacao.Kind)
	assert.Equal(t, "João", orders[0].Situacao.DelivererName)
	assert.Nil(t, orders[0].DataEntregue)
}

func TestClient_UploadOrderImage(t *testing.T) {
	t.Parallel()

	var (
		gotPath string
		gotFile string
		gotName string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		f, hdr, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotFile = string(b)
		gotName = hdr.Filename
		_, _ = w.Write([]byte(`{"imageUrl":"https://cdn/x.png"}`))
	})

	url, err := c.UploadOrderImage(context.Background(), "o1", domain.Attachment{Filename: "x.png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", url)
	assert.Equal(t, "/upload/order/o1", gotPath)
	assert.Equal(t, "png", gotFile)
	assert.Equal(t, "x.png", gotName)
}

func TestClient_UploadOrderImage_EmptyURLIsUpstreamError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := c.UploadOrderImage(context.Background(), "o1", domain.Attachment{Data: []byte("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestClient_HTTPErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status int
		want   error
		retry  bool
	}{
		{http.StatusNotFound, apperr.ErrNotFound, false},
		{http.StatusUnauthorized, apperr.ErrUnauthorized, false},
		{http.StatusConflict, apperr.ErrConflict, false},
		{http.StatusBadRequest, apperr.ErrInvalid, false},
		{http.StatusTooManyRequests, apperr.ErrUpstream, true},
		{http.StatusBadGateway, apperr.ErrUpstream, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"message":"boom"}`))
			})
			_, err := c.GetOrder(context.Background(), "o1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var he *HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, "boom", he.Message)
			assert.Equal(t, tc.retry, isRetryable(err))
		})
	}
}

func TestClient_TransportErrorIsRetryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, time.Second, nil)

	_, err := c.GetUser(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, isRetryable(err))
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if r.URL.Path != "/employee/login" || body["login"] != "ana" || body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":"t1","employee":{"id":"e1","name":"Ana"}}`))
	})

	res, err := c.Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, "Ana", res.Employee.Name)

	_, err = c.Login(context.Background(), "ana", "bad")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
