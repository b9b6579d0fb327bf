package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"painel-social/internal/http/middleware"
	"painel-social/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter     `name:"gateway_retries_total"`
	BulkOrdersTotal        *prometheus.CounterVec `name:"bulk_orders_total"`
	StatusEventsTotal      *prometheus.CounterVec `name:"order_status_events_total"`
	HTTP                   *middleware.HTTPMetrics
}

// provideMetrics registers every collector on the default registry, reusing
// collectors a previous container already registered.
func provideMetrics() (metricsOut, error) {
	reg := prometheus.DefaultRegisterer
	var (
		out metricsOut
		err error
	)

	if out.RateLimitExceededTotal, err = metrics.Register(reg, metrics.NewRateLimitExceededTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register rate_limit_exceeded_total: %w", err)
	}
	if out.GatewayRetriesTotal, err = metrics.Register(reg, metrics.NewGatewayRetriesTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register gateway_retries_total: %w", err)
	}
	if out.BulkOrdersTotal, err = metrics.Register(reg, metrics.NewBulkOrdersTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register bulk_orders_total: %w", err)
	}
	if out.StatusEventsTotal, err = metrics.Register(reg, metrics.NewStatusEventsTotal()); err != nil {
		return metricsOut{}, fmt.Errorf("register order_status_events_total: %w", err)
	}

	httpMetrics := middleware.NewHTTPMetrics()
	if httpMetrics.Requests, err = metrics.Register(reg, httpMetrics.Requests); err != nil {
		return metricsOut{}, fmt.Errorf("register http_requests_total: %w", err)
	}
	if httpMetrics.Duration, err = metrics.Register(reg, httpMetrics.Duration); err != nil {
		return metricsOut{}, fmt.Errorf("register http_request_duration_seconds: %w", err)
	}
	out.HTTP = httpMetrics
	return out, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}
