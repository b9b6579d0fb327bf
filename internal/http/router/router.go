package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"painel-social/internal/http/handlers"
)

const defaultTimeout = 30 * time.Second

// Deps are the handlers and middlewares mounted by New.
type Deps struct {
	Base          *handlers.Handlers
	Session       *handlers.SessionHandler
	Orders        *handlers.OrderHandler
	Bulk          *handlers.BulkHandler
	Selection     *handlers.SelectionHandler
	Deliverers    *handlers.DelivererHandler
	Registrations *handlers.RegistrationHandler

	Metrics       http.Handler
	Observability func(http.Handler) http.Handler
	LoginLimit    func(http.Handler) http.Handler
	Timeout       time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if d.Observability != nil {
		r.Use(d.Observability)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	r.NotFound(d.Base.NotFound)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", d.Base.GetCatalog)

		r.Route("/session", func(r chi.Router) {
			r.With(optional(d.LoginLimit)).Post("/", d.Session.Login)
			r.Get("/", d.Session.Get)
			r.Delete("/", d.Session.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(d.Session.Require)

			r.Get("/orders", d.Orders.List)
			r.Post("/orders/bulk", d.Bulk.Apply)
			r.Get("/orders/{id}/history", d.Orders.History)
			r.Get("/bulk/{id}", d.Bulk.GetRun)

			r.Get("/selection", d.Selection.Get)
			r.Delete("/selection", d.Selection.Clear)
			r.Post("/selection/toggle", d.Selection.Toggle)
			r.Post("/selection/visible", d.Selection.Visible)

			r.Get("/deliverers", d.Deliverers.List)
			r.Post("/deliverers", d.Deliverers.Create)
			r.Put("/deliverers/{id}", d.Deliverers.Rename)
			r.Delete("/deliverers/{id}", d.Deliverers.Delete)

			r.Post("/registrations/step1", d.Registrations.Step1)
			r.Post("/registrations", d.Registrations.Submit)
		})
	})

	return r
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
