package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRateLimitExceededTotal counts login attempts rejected by the rate limiter.
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal counts retry attempts performed against the external API.
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by the social API gateway",
	})
}

// NewBulkOrdersTotal counts per-order outcomes of bulk transitions.
func NewBulkOrdersTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bulk_orders_total",
		Help: "Orders processed by bulk transitions, by action and outcome",
	}, []string{"action", "outcome"})
}

// NewStatusEventsTotal counts order status events handled by the worker.
func NewStatusEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_events_total",
		Help: "Order status events consumed by the worker, by result",
	}, []string{"result"})
}

// Register registers c on reg. When an equal collector is already
// registered, the existing one is returned so counts keep accumulating there.
func Register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}
