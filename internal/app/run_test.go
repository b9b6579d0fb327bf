package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"painel-social/internal/config"
	"painel-social/internal/logx"
	"painel-social/internal/repository"
	"painel-social/internal/service/selection"
	testlog "painel-social/internal/testutil"
)

type fakeCleaner struct {
	calls atomic.Int32
	err   error
}

func (f *fakeCleaner) DeleteExpired(context.Context, time.Time) (int64, error) {
	f.calls.Add(1)
	return 2, f.err
}

// requireEventually - делаем проверку, пока она не будет пройдена или не истекнет таймаут, для защиты в CI от флаков
// вдруг у нас планировщик не успеет
func requireEventually(t *testing.T, timeout time.Duration, tick time.Duration, condition func() bool, msgAndArgs ...any) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		if condition() {
			return
		}
		if time.Now().After(deadline) {
			if len(msgAndArgs) > 0 {
				t.Fatalf(msgAndArgs[0].(string), msgAndArgs[1:]...)
			}
			t.Fatalf("condition not satisfied within %s", timeout)
		}
		<-ticker.C
	}
}

func TestStartSessionCleanupLoop_DeletesExpired(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testlog.New()
	cleaner := &fakeCleaner{}
	startSessionCleanupLoop(ctx, rec.Logger(), sessionCleanup{sessions: cleaner}, 10*time.Millisecond)

	requireEventually(t, 500*time.Millisecond, 5*time.Millisecond,
		func() bool { return cleaner.calls.Load() > 0 && rec.Has("info", "expired sessions removed") },
		"expected DeleteExpired to be called at least once",
	)
}

func TestStartSessionCleanupLoop_LogsFailures(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := testlog.New()
	cleaner := &fakeCleaner{err: errors.New("db down")}
	startSessionCleanupLoop(ctx, rec.Logger(), sessionCleanup{sessions: cleaner}, 10*time.Millisecond)

	requireEventually(t, 500*time.Millisecond, 5*time.Millisecond,
		func() bool { return rec.Has("warn", "session cleanup failed") },
	)
	require.False(t, rec.Has("info", "expired sessions removed"))
}

func TestStartSessionCleanupLoop_DisabledWithoutInterval(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := &fakeCleaner{}
	startSessionCleanupLoop(ctx, logx.Nop(), sessionCleanup{sessions: cleaner}, 0)
	time.Sleep(30 * time.Millisecond)
	require.Zero(t, cleaner.calls.Load())
}

func TestSessionCleanup_SweepsIdleSelections(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	store := selection.NewStore()
	store.Toggle("sessao-antiga", "p1")

	c := sessionCleanup{sessions: &fakeCleaner{}, selections: store, ttl: time.Hour}

	c.run(context.Background(), rec.Logger(), time.Now())
	require.Equal(t, 1, store.Len())

	c.run(context.Background(), rec.Logger(), time.Now().Add(2*time.Hour))
	require.Zero(t, store.Len())
	require.True(t, rec.Has("info", "idle selections removed"))
}

func TestStartSessionCleanupLoop_SweepsSelectionsWithoutRepo(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := selection.NewStore()
	store.Toggle("s1", "p1")
	// TTL в 1нс: к первому тику любая выборка уже простаивает
	startSessionCleanupLoop(ctx, logx.Nop(), sessionCleanup{selections: store, ttl: time.Nanosecond}, 10*time.Millisecond)

	requireEventually(t, 500*time.Millisecond, 5*time.Millisecond,
		func() bool { return store.Len() == 0 },
		"expected idle selection to be swept",
	)
}

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
	logger := logx.Nop()

	require.NotPanics(t, func() {
		gracefulShutdown(srv, logger, 100*time.Millisecond)
	})
}

func containerWithLogger(t *testing.T, logger logx.Logger) *dig.Container {
	t.Helper()
	container := dig.New()
	require.NoError(t, container.Provide(func() logx.Logger { return logger }))
	return container
}

func TestRunner_MustRun_ShutdownRequested(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{
		runFn: func(_ *dig.Container) error {
			return context.Canceled
		},
	}
	r.MustRun(containerWithLogger(t, rec.Logger()))
	require.True(t, rec.Has("info", "shutdown requested, exiting"))
}

func TestRunner_MustRun_StartupTimeout(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{
		runFn: func(_ *dig.Container) error {
			return context.DeadlineExceeded
		},
	}
	r.MustRun(containerWithLogger(t, rec.Logger()))
	require.True(t, rec.Has("warn", "startup aborted: startup timeout exceeded"))
}

func TestRunner_MustRun_PanicsOnOtherError(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	r := &Runner{runFn: func(*dig.Container) error { return errors.New("boom") }}
	require.Panics(t, func() { r.MustRun(containerWithLogger(t, rec.Logger())) })
	require.True(t, rec.Has("error", "run error"))
}

func TestRunner_MustRun_WithoutLoggerInContainer(t *testing.T) {
	t.Parallel()

	r := &Runner{runFn: func(*dig.Container) error { return context.Canceled }}
	require.NotPanics(t, func() { r.MustRun(dig.New()) })
}

func TestNewRunner_DefaultFields(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	require.NotNil(t, r)

	require.NotNil(t, r.runFn)
	require.Equal(t, fmt.Sprintf("%p", run), fmt.Sprintf("%p", r.runFn))
}

func TestRun_InvokesAppRunViaContainer(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := dig.New()
	require.NoError(t, provideAll(container,
		func() context.Context { return ctx },
		func() *config.Config { return &config.Config{} },
		logx.Nop,
		func() *pgxpool.Pool { return nil },
		func() *repository.SessionRepo { return nil },
		selection.NewStore,
		func() *http.Server {
			return &http.Server{
				Addr:    "127.0.0.1:0",
				Handler: http.NewServeMux(),
			}
		},
	))

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := run(container)
	require.ErrorIs(t, err, context.Canceled)
}
