package socialapi

import (
	"context"
	"net/http"
	"net/url"

	"painel-social/internal/domain"
)

// GetUser fetches the citizen owning an order.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new citizen and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", u, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out = u
	}
	return &out, nil
}

// LoginResult is the answer of POST /employee/login.
type LoginResult struct {
	Token    string          `json:"token"`
	Employee domain.Employee `json:"employee"`
}

// Login authenticates an operator.
func (c *Client) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	body := map[string]string{"login": login, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/employee/login", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &HTTPError{Method: http.MethodPost, Path: "/employee/login", StatusCode: http.StatusUnauthorized, Message: "empty token"}
	}
	return &out, nil
}
