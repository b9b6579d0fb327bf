package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"painel-social/internal/domain"
)

// BulkRepo stores bulk run summaries.
type BulkRepo struct {
	db *pgxpool.Pool
}

func NewBulkRepo(db *pgxpool.Pool) *BulkRepo {
	return &BulkRepo{db: db}
}

// SaveRun stores a run and its items atomically.
func (r *BulkRepo) SaveRun(ctx context.Context, run domain.BulkRun) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bulk_runs (id, action, employee_id, target, image_url, started_at, finished_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, run.ID, string(run.Action), run.EmployeeID, run.Target, run.ImageURL, run.StartedAt, run.FinishedAt)
		if err != nil {
			return mapErr("insert bulk run", err)
		}
		if len(run.Items) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, it := range run.Items {
			batch.Queue(`
				INSERT INTO bulk_run_items (bulk_id, order_id, position, outcome, reason)
				VALUES ($1, $2, $3, $4, $5)
			`, run.ID, it.OrderID, i, string(it.Outcome), it.Reason)
		}
		br := tx.SendBatch(ctx, batch)
		for range run.Items {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return mapErr("insert bulk run item", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
		return nil
	})
}

// GetRun loads a run with its items in selection order.
func (r *BulkRepo) GetRun(ctx context.Context, id string) (*domain.BulkRun, error) {
	var (
		run    domain.BulkRun
		action string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id::text, action, employee_id, target, image_url, started_at, finished_at
		FROM bulk_runs
		WHERE id = $1
	`, id).Scan(&run.ID, &action, &run.EmployeeID, &run.Target, &run.ImageURL, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		return nil, mapErr("get bulk run", err)
	}
	run.Action = domain.BulkActionKind(action)

	rows, err := r.db.Query(ctx, `
		SELECT order_id, outcome, reason
		FROM bulk_run_items
		WHERE bulk_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, mapErr("list bulk run items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it      domain.BulkRunItem
			outcome string
		)
		if err := rows.Scan(&it.OrderID, &outcome, &it.Reason); err != nil {
			return nil, fmt.Errorf("scan bulk run item: %w", err)
		}
		it.Outcome = domain.BulkOutcome(outcome)
		run.Items = append(run.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bulk run items: %w", err)
	}
	return &run, nil
}
