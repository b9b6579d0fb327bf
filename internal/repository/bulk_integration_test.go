//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"painel-social/internal/apperr"
	"painel-social/internal/domain"
	"painel-social/internal/repository"
)

func TestBulkRepo_SaveAndGetRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewBulkRepo(tcPool)
	started := time.Now().UTC().Truncate(time.Microsecond)

	run := domain.BulkRun{
		ID:         uuid.NewString(),
		Action:     domain.ActionFinalize,
		EmployeeID: "e1",
		Target:     "Finalizado",
		ImageURL:   "https://cdn/x.png",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Items: []domain.BulkRunItem{
			{OrderID: "o2", Outcome: domain.OutcomeUpdated},
			{OrderID: "o1", Outcome: domain.OutcomeFailed, Reason: "HTTP 500"},
		},
	}
	require.NoError(t, repo.SaveRun(ctx, run))

	got, err := repo.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.Equal(t, run.Action, got.Action)
	require.Equal(t, run.ImageURL, got.ImageURL)
	require.Equal(t, run.Items, got.Items, "items keep selection order")
}

func TestBulkRepo_SaveRunIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewBulkRepo(tcPool)
	now := time.Now().UTC()

	run := domain.BulkRun{
		ID:         uuid.NewString(),
		Action:     domain.ActionCancel,
		EmployeeID: "e1",
		Target:     "Cancelado",
		StartedAt:  now,
		FinishedAt: now,
		Items: []domain.BulkRunItem{
			{OrderID: "dup", Outcome: domain.OutcomeUpdated},
			{OrderID: "dup", Outcome: domain.OutcomeUpdated},
		},
	}
	require.ErrorIs(t, repo.SaveRun(ctx, run), apperr.ErrConflict)

	_, err := repo.GetRun(ctx, run.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
