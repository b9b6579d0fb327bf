package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
)

// SessionRepo stores operator sessions.
type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, token, employee_id, employee_name, employee_role, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, s.ID, s.Token, s.Employee.ID, s.Employee.Name, s.Employee.Role, s.CreatedAt, s.ExpiresAt)
	return mapErr("insert session", err)
}

// Get returns apperr.ErrNotFound for unknown ids.
func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id::text, token, employee_id, employee_name, employee_role, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`, id)

	var s domain.Session
	if err := row.Scan(&s.ID, &s.Token, &s.Employee.ID, &s.Employee.Name, &s.Employee.Role, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return nil, mapErr("get session", err)
	}
	return &s, nil
}

// Delete returns apperr.ErrNotFound when nothing was removed.
func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return mapErr("delete session", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DeleteExpired removes sessions that expired before now and returns how many.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, mapErr("delete expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
