package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"painel-social/internal/catalog"
	"painel-social/internal/config"
	"painel-social/internal/gateway/socialapi"
	"painel-social/internal/http/handlers"
	"painel-social/internal/http/middleware"
	"painel-social/internal/http/middleware/ratelimit"
	"painel-social/internal/http/router"
	"painel-social/internal/logx"
	"painel-social/internal/repository"
	"painel-social/internal/service/bulk"
	"painel-social/internal/service/deliverer"
	"painel-social/internal/service/orderlist"
	"painel-social/internal/service/orders"
	"painel-social/internal/service/registration"
	"painel-social/internal/service/selection"
	"painel-social/internal/service/session"
	"painel-social/internal/transport/kafka"
)

type gatewayIn struct {
	dig.In
	Config  *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newGateway(in gatewayIn) *socialapi.RetryingGateway {
	client := socialapi.NewClient(in.Config.API.BaseURL, in.Config.API.Timeout, nil)
	return socialapi.NewRetryingGateway(client, in.Logger, in.Retries, socialapi.RetryConfig{
		MaxAttempts: in.Config.Gateway.MaxAttempts,
		BaseDelay:   in.Config.Gateway.BaseDelay,
		MaxDelay:    in.Config.Gateway.MaxDelay,
	})
}

func registerGateway(container *dig.Container) error {
	return provideAll(container, newGateway)
}

type processorIn struct {
	dig.In
	Repo    *repository.HistoryRepo
	Results *prometheus.CounterVec `name:"order_status_events_total"`
	Logger  logx.Logger
}

func newProcessor(in processorIn) *orders.Processor {
	return orders.NewProcessor(in.Repo, in.Results, in.Logger)
}

// newPublisher sends status changes to Kafka when configured, otherwise the
// processor writes the history in-process.
func newPublisher(producer *kafka.Producer, processor *orders.Processor) bulk.Publisher {
	if producer != nil {
		return producer
	}
	return processor
}

type bulkIn struct {
	dig.In
	Config    *config.Config
	Gateway   *socialapi.RetryingGateway
	Runs      *repository.BulkRepo
	Publisher bulk.Publisher
	Outcomes  *prometheus.CounterVec `name:"bulk_orders_total"`
	Logger    logx.Logger
}

func newBulkService(in bulkIn) *bulk.Service {
	return bulk.NewService(in.Gateway, in.Runs, in.Publisher, in.Outcomes, in.Logger, bulk.Options{
		Concurrency:      in.Config.Bulk.Concurrency,
		CancelStampsDate: in.Config.Bulk.CancelStampsDate,
		Location:         in.Config.Location,
	})
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(repo *repository.SessionRepo, gw *socialapi.RetryingGateway, cfg *config.Config, logger logx.Logger) *session.Service {
			return session.NewService(repo, gw, cfg.Session.TTL, logger)
		},
		func(gw *socialapi.RetryingGateway, cfg *config.Config) *deliverer.Service {
			return deliverer.NewService(gw, cfg.API.Timeout)
		},
		func(gw *socialapi.RetryingGateway, cfg *config.Config, logger logx.Logger) *orderlist.View {
			return orderlist.NewView(gw, logger, cfg.Bulk.Concurrency)
		},
		selection.NewStore,
		func(gw *socialapi.RetryingGateway, logger logx.Logger) *registration.Service {
			return registration.NewService(gw, logger)
		},
		newProcessor,
		func(cfg *config.Config) (*kafka.Producer, error) {
			return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		},
		newPublisher,
		newBulkService,
		func(cfg *config.Config) (*catalog.Catalog, error) {
			return catalog.Load(cfg.CatalogPath)
		},
	)
}

type routerIn struct {
	dig.In
	Base          *handlers.Handlers
	Session       *handlers.SessionHandler
	Orders        *handlers.OrderHandler
	Bulk          *handlers.BulkHandler
	Selection     *handlers.SelectionHandler
	Deliverers    *handlers.DelivererHandler
	Registrations *handlers.RegistrationHandler
	Limit         *ratelimit.Middleware
	Metrics       *middleware.HTTPMetrics
	Logger        logx.Logger
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:          in.Base,
		Session:       in.Session,
		Orders:        in.Orders,
		Bulk:          in.Bulk,
		Selection:     in.Selection,
		Deliverers:    in.Deliverers,
		Registrations: in.Registrations,
		Metrics:       promhttp.Handler(),
		Observability: middleware.Observability(in.Logger, in.Metrics),
		LoginLimit:    in.Limit.Handler(),
	})
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		handlers.New,
		func(uc *session.Service, store *selection.Store, logger logx.Logger) *handlers.SessionHandler {
			return handlers.NewSessionHandler(uc, store, logger)
		},
		func(
			view *orderlist.View,
			history *orders.Processor,
			store *selection.Store,
			cat *catalog.Catalog,
			cfg *config.Config,
			logger logx.Logger,
		) *handlers.OrderHandler {
			return handlers.NewOrderHandler(view, history, store, logger, handlers.OrderOptions{
				PruneOnFilter: cfg.Selection == config.ScopeFilter,
				Location:      cfg.Location,
				Catalog:       cat,
			})
		},
		func(
			uc *bulk.Service,
			runs *repository.BulkRepo,
			deliverers *deliverer.Service,
			store *selection.Store,
			logger logx.Logger,
		) *handlers.BulkHandler {
			return handlers.NewBulkHandler(uc, runs, deliverers, store, logger)
		},
		func(store *selection.Store, logger logx.Logger) *handlers.SelectionHandler {
			return handlers.NewSelectionHandler(store, logger)
		},
		func(uc *deliverer.Service, logger logx.Logger) *handlers.DelivererHandler {
			return handlers.NewDelivererHandler(uc, logger)
		},
		func(uc *registration.Service, logger logx.Logger) *handlers.RegistrationHandler {
			return handlers.NewRegistrationHandler(uc, logger)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		newServer,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newProcessor,
		func(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.Topic, makeStatusHandler(p, statusEventTimeout))
		},
	)
}
