package app

import (
	"context"
	"time"

	"painel-social/internal/domain"
	"painel-social/internal/transport/kafka"
)

const statusEventTimeout = 5 * time.Second

type statusHandler interface {
	Handle(ctx context.Context, c domain.StatusChange) error
}

// makeStatusHandler bounds every consumed event by timeout.
func makeStatusHandler(h statusHandler, timeout time.Duration) kafka.HandleFunc {
	return func(ctx context.Context, c domain.StatusChange) error {
		if timeout <= 0 {
			return h.Handle(ctx, c)
		}
		hctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return h.Handle(hctx, c)
	}
}
