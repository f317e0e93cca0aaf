// internal/server/router.go
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/observability"
)

// RouteRegistrar mounts a service's routes on the /api subrouter.
type RouteRegistrar interface {
	RegisterRoutes(api *mux.Router)
}

type RouterOptions struct {
	Logger        logger.Logger
	Observability *observability.Observability
	HealthChecks  map[string]HealthCheck
	HealthTimeout time.Duration
	Services      []RouteRegistrar
}

// NewRouter builds the top-level router: /health, /metrics and every service
// under /api.
func NewRouter(opts RouterOptions) *mux.Router {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	obs := opts.Observability
	if obs == nil {
		obs = observability.NewNoop()
	}
	timeout := opts.HealthTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	router := mux.NewRouter()
	router.Use(RecoveryMiddleware(log), LoggingMiddleware(log), MetricsMiddleware(obs))

	router.HandleFunc("/health", healthHandler(opts.HealthChecks, timeout)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	for _, svc := range opts.Services {
		svc.RegisterRoutes(api)
	}
	return router
}
