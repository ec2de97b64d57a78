package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafaeltorres/rocketcart-backend/api/controllers"
	"github.com/rafaeltorres/rocketcart-backend/api/middleware"
	"github.com/rafaeltorres/rocketcart-backend/pkg/config"
	"github.com/rafaeltorres/rocketcart-backend/pkg/logger"
)

// Params carries everything the router wires together.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	Sessions controllers.SessionSource
	Pingers  map[string]controllers.Pinger
	Gatherer prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Healthz(p.Config, p.Logger, p.Pingers))

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SessionID(p.Logger))
		r.Get("/ping", controllers.Ping())

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.Sessions, p.Logger))
			r.Route("/items/{productId}", func(r chi.Router) {
				r.Post("/", controllers.CartAddItem(p.Sessions, p.Logger))
				r.Delete("/", controllers.CartRemoveItem(p.Sessions, p.Logger))
				r.Put("/", controllers.CartSetAmount(p.Sessions, p.Logger))
			})
		})

		r.Get("/notifications", controllers.Notifications(p.Sessions, p.Logger))
	})

	return r
}
