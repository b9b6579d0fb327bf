package deliverer

import (
	"context"

	"painel-social/internal/domain"
)

// delivererGateway is the deliverer part of the external API.
type delivererGateway interface {
	ListDeliverers(ctx context.Context) ([]domain.Deliverer, error)
	CreateDeliverer(ctx context.Context, name string) (*domain.Deliverer, error)
	UpdateDeliverer(ctx context.Context, id, name string) (*domain.Deliverer, error)
	DeleteDeliverer(ctx context.Context, id string) error
}
