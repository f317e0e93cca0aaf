// internal/server/middleware.go
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/metrics"
	"rfp-dashboard/internal/common/observability"
)

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// routeName returns the mux path template so metrics are not labelled with ids.
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// LoggingMiddleware logs every request with method, path, status and duration.
func LoggingMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_addr": r.RemoteAddr,
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}
			if ua := r.Header.Get("User-Agent"); ua != "" {
				fields["user_agent"] = ua
			}

			switch {
			case wrapped.statusCode >= 500:
				log.Error("HTTP request completed", fields)
			case wrapped.statusCode >= 400:
				log.Warn("HTTP request completed", fields)
			default:
				log.Info("HTTP request completed", fields)
			}
		})
	}
}

// MetricsMiddleware tracks in-flight requests and records count and latency
// per route template.
func MetricsMiddleware(obs *observability.Observability) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := routeName(r)
			inFlight := metrics.RequestsInFlight.WithLabelValues(route)
			inFlight.Inc()
			defer inFlight.Dec()

			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			obs.RecordRequest(r.Context(), route, r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}

// RecoveryMiddleware turns a handler panic into a 500.
func RecoveryMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("Handler panicked", map[string]interface{}{
						"path":  r.URL.Path,
						"panic": rec,
					})
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
