package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"painel-social/internal/domain"
)

// HistoryRepo stores the order status timeline.
type HistoryRepo struct {
	db *pgxpool.Pool
}

func NewHistoryRepo(db *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append inserts c unless the same bulk already recorded the order.
func (r *HistoryRepo) Append(ctx context.Context, c domain.StatusChange) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO order_status_history (order_id, situacao, data_entregue, employee_id, bulk_id, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (bulk_id, order_id) DO NOTHING
	`, c.OrderID, c.Situacao.String(), c.DataEntregue, c.EmployeeID, c.BulkID, c.ChangedAt)
	if err != nil {
		return false, mapErr("append status change", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByOrder returns the timeline of one order, oldest first.
func (r *HistoryRepo) ListByOrder(ctx context.Context, orderID string) ([]domain.StatusChange, error) {
	rows, err := r.db.Query(ctx, `
		SELECT order_id, situacao, data_entregue, employee_id, bulk_id, changed_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY changed_at, id
	`, orderID)
	if err != nil {
		return nil, mapErr("list status history", err)
	}
	defer rows.Close()

	out := []domain.StatusChange{}
	for rows.Next() {
		var (
			c        domain.StatusChange
			situacao string
			entregue *time.Time
		)
		if err := rows.Scan(&c.OrderID, &situacao, &entregue, &c.EmployeeID, &c.BulkID, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan status change: %w", err)
		}
		c.Situacao = domain.ParseSituacao(situacao)
		c.DataEntregue = entregue
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status history: %w", err)
	}
	return out, nil
}
