package socialapi

import (
	"context"
	"time"

	"painel-social/internal/domain"
	"painel-social/internal/logx"
)

// api is the full surface of the external API used by the services.
type api interface {
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id string, body UpdateOrderBody) error
	UploadOrderImage(ctx context.Context, id string, att domain.Attachment) (string, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	ListDeliverers(ctx context.Context) ([]domain.Deliverer, error)
	CreateDeliverer(ctx context.Context, name string) (*domain.Deliverer, error)
	UpdateDeliverer(ctx context.Context, id, name string) (*domain.Deliverer, error)
	DeleteDeliverer(ctx context.Context, id string) error
}

type counter interface {
	Inc()
}

// RetryConfig describes how RetryingGateway repeats reads.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries idempotent reads on 429, 5xx and transport errors.
// Writes pass through once.
type RetryingGateway struct {
	next    api
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingGateway returns nil when next is nil.
func NewRetryingGateway(next api, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

func retry[T any](ctx context.Context, g *RetryingGateway, method string, call func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		v, err := call()
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("social api retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !g.sleep(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

func (g *RetryingGateway) ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	return retry(ctx, g, "ListOrders", func() ([]domain.Order, error) { return g.next.ListOrders(ctx, f) })
}

func (g *RetryingGateway) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return retry(ctx, g, "GetOrder", func() (*domain.Order, error) { return g.next.GetOrder(ctx, id) })
}

func (g *RetryingGateway) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return retry(ctx, g, "GetUser", func() (*domain.User, error) { return g.next.GetUser(ctx, id) })
}

func (g *RetryingGateway) ListDeliverers(ctx context.Context) ([]domain.Deliverer, error) {
	return retry(ctx, g, "ListDeliverers", func() ([]domain.Deliverer, error) { return g.next.ListDeliverers(ctx) })
}

func (g *RetryingGateway) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	return g.next.Login(ctx, login, password)
}

func (g *RetryingGateway) UpdateOrder(ctx context.Context, id string, body UpdateOrderBody) error {
	return g.next.UpdateOrder(ctx, id, body)
}

func (g *RetryingGateway) UploadOrderImage(ctx context.Context, id string, att domain.Attachment) (string, error) {
	return g.next.UploadOrderImage(ctx, id, att)
}

func (g *RetryingGateway) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	return g.next.CreateUser(ctx, u)
}

func (g *RetryingGateway) CreateDeliverer(ctx context.Context, name string) (*domain.Deliverer, error) {
	return g.next.CreateDeliverer(ctx, name)
}

func (g *RetryingGateway) UpdateDeliverer(ctx context.Context, id, name string) (*domain.Deliverer, error) {
	return g.next.UpdateDeliverer(ctx, id, name)
}

func (g *RetryingGateway) DeleteDeliverer(ctx context.Context, id string) error {
	return g.next.DeleteDeliverer(ctx, id)
}

// backoff doubles base per attempt, capped at max.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d <= 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
