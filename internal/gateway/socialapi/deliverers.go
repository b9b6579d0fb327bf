package socialapi

import (
	"context"
	"net/http"
	"net/url"

	"painel-social/internal/domain"
)

type delivererBody struct {
	Name string `json:"name"`
}

func (c *Client) ListDeliverers(ctx context.Context) ([]domain.Deliverer, error) {
	var out []domain.Deliverer
	if err := c.doJSON(ctx, http.MethodGet, "/delivery", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDeliverer(ctx context.Context, name string) (*domain.Deliverer, error) {
	var out domain.Deliverer
	if err := c.doJSON(ctx, http.MethodPost, "/delivery", delivererBody{Name: name}, &out); err != nil {
		return nil, err
	}
	if out.Name == "" {
		out.Name = name
	}
	return &out, nil
}

func (c *Client) UpdateDeliverer(ctx context.Context, id, name string) (*domain.Deliverer, error) {
	var out domain.Deliverer
	if err := c.doJSON(ctx, http.MethodPut, "/delivery/"+url.PathEscape(id), delivererBody{Name: name}, &out); err != nil {
		return nil, err
	}
	if out.IDDelivery == "" {
		out = domain.Deliverer{IDDelivery: id, Name: name}
	}
	return &out, nil
}

func (c *Client) DeleteDeliverer(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/delivery/"+url.PathEscape(id), nil, nil)
}
