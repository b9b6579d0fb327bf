package socialapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
)

// UpdateOrderBody is the payload of PUT /orders/{id}.
type UpdateOrderBody struct {
	Usuario      string          `json:"usuario"`
	Situacao     domain.Situacao `json:"situacao"`
	DataEntregue *time.Time      `json:"dataEntregue"`
	ImageURL     string          `json:"imageUrl,omitempty"`
}

// ListOrders fetches orders of one service for the given month and year.
// Zero fields are left out of the query.
func (c *Client) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	q := url.Values{}
	if f.Servico != "" {
		q.Set("servico", f.Servico)
	}
	if f.Mes > 0 {
		q.Set("mes", strconv.Itoa(f.Mes))
	}
	if f.Ano > 0 {
		q.Set("ano", strconv.Itoa(f.Ano))
	}
	path := "/orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []domain.Order
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder applies a status transition to one order.
func (c *Client) UpdateOrder(ctx context.Context, id string, body UpdateOrderBody) error {
	return c.doJSON(ctx, http.MethodPut, "/orders/"+url.PathEscape(id), body, nil)
}

// UploadOrderImage uploads a file for order id and returns the stored image URL.
func (c *Client) UploadOrderImage(ctx context.Context, id string, att domain.Attachment) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	name := att.Filename
	if name == "" {
		name = "anexo"
	}
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("social api: build upload: %w", err)
	}
	if _, err := fw.Write(att.Data); err != nil {
		return "", fmt.Errorf("social api: build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("social api: build upload: %w", err)
	}

	var out struct {
		ImageURL string `json:"imageUrl"`
	}
	path := "/upload/order/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.ImageURL == "" {
		return "", fmt.Errorf("social api: POST %s: %w: %w", path, errEmptyImageURL, apperr.ErrUpstream)
	}
	return out.ImageURL, nil
}
