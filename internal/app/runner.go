package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"painel-social/internal/config"
	"painel-social/internal/logx"
	"painel-social/internal/repository"
	"painel-social/internal/service/selection"
	"painel-social/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the panel HTTP service.
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a Runner backed by the container's server.
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logger := loggerFrom(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	var logger logx.Logger
	if err := container.Invoke(func(l logx.Logger) { logger = l }); err != nil || logger == nil {
		return logx.Nop()
	}
	return logger
}

type runIn struct {
	dig.In
	Ctx        context.Context
	Config     *config.Config
	Server     *http.Server
	Pool       *pgxpool.Pool
	Logger     logx.Logger
	Sessions   *repository.SessionRepo
	Selections *selection.Store
	Producer   *kafka.Producer `optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		startServer(in.Server, in.Logger)
		startSessionCleanupLoop(in.Ctx, in.Logger, sessionCleanup{
			sessions:   in.Sessions,
			selections: in.Selections,
			ttl:        in.Config.Session.TTL,
		}, in.Config.Session.CleanupInterval)
		waitForShutdown(in.Ctx, in.Logger)
		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		closeResources(in.Pool, in.Server, in.Producer, in.Logger)
		return in.Ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("painel listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", logx.Err(err))
		}
	}()
}

type sessionCleaner interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type selectionSweeper interface {
	Sweep(cutoff time.Time) int
}

// sessionCleanup drops expired sessions and the selections they left behind.
type sessionCleanup struct {
	sessions   sessionCleaner
	selections selectionSweeper
	ttl        time.Duration
}

func (c sessionCleanup) run(ctx context.Context, logger logx.Logger, now time.Time) {
	if c.sessions != nil {
		n, err := c.sessions.DeleteExpired(ctx, now)
		switch {
		case err != nil:
			if ctx.Err() == nil {
				logger.Warn("session cleanup failed", logx.Err(err))
			}
		case n > 0:
			logger.Info("expired sessions removed", logx.Any("count", n))
		}
	}
	// выборка не менялась дольше TTL, значит её сессия уже истекла
	if c.selections != nil && c.ttl > 0 {
		if n := c.selections.Sweep(now.Add(-c.ttl)); n > 0 {
			logger.Info("idle selections removed", logx.Int("count", n))
		}
	}
}

// startSessionCleanupLoop runs c every interval until ctx ends.
func startSessionCleanupLoop(ctx context.Context, logger logx.Logger, c sessionCleanup, interval time.Duration) {
	if interval <= 0 || (c.sessions == nil && c.selections == nil) {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.run(ctx, logger, time.Now())
			}
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down painel...")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(pool *pgxpool.Pool, server *http.Server, producer *kafka.Producer, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Error("server close error", logx.Err(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka producer close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	if err := logger.Sync(); err != nil {
		logger.Debug("logger sync failed", logx.Err(err))
	}
}
