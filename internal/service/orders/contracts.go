//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"

	"painel-social/internal/domain"
)

// HistoryRepository stores the order status timeline.
type HistoryRepository interface {
	// Append stores c and reports false when the same bulk already recorded the order.
	Append(ctx context.Context, c domain.StatusChange) (bool, error)
	ListByOrder(ctx context.Context, orderID string) ([]domain.StatusChange, error)
}
