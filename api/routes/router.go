package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/csu-mims/inventory-backend/api/controllers"
	"github.com/csu-mims/inventory-backend/api/middleware"
	"github.com/csu-mims/inventory-backend/internal/auth"
	"github.com/csu-mims/inventory-backend/internal/items"
	"github.com/csu-mims/inventory-backend/internal/stockout"
	"github.com/csu-mims/inventory-backend/pkg/auth/session"
	"github.com/csu-mims/inventory-backend/pkg/config"
	"github.com/csu-mims/inventory-backend/pkg/logger"
	"github.com/csu-mims/inventory-backend/pkg/metrics"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	ItemService     items.Service
	StockOutService stockout.Service
	HTTPMetrics     *metrics.HTTPMetrics
	HealthDeps      map[string]controllers.Pinger
	MetricsHandler  http.Handler
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthDeps))
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ItemList(deps.ItemService, logg))
			r.Post("/", controllers.ItemCreate(deps.ItemService, logg))
			r.Get("/{itemId}", controllers.ItemGet(deps.ItemService, logg))
			r.Patch("/{itemId}", controllers.ItemUpdate(deps.ItemService, logg))
			r.With(middleware.RequireRole("admin", logg)).
				Delete("/{itemId}", controllers.ItemDelete(deps.ItemService, logg))
		})

		r.Route("/stock-outs", func(r chi.Router) {
			r.Get("/", controllers.StockOutList(deps.StockOutService, logg))
			r.Post("/", controllers.StockOutCreate(deps.StockOutService, logg))
			r.Get("/{transactionId}", controllers.StockOutGet(deps.StockOutService, logg))
		})
	})

	return r
}
