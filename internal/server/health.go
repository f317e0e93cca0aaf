// internal/server/health.go
package server

import (
	"context"
	"net/http"
	"time"

	commonhttp "rfp-dashboard/internal/common/http"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type healthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// healthHandler answers 200 when every check passes, 503 otherwise.
func healthHandler(checks map[string]HealthCheck, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks)), Timestamp: time.Now().UTC()}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		commonhttp.WriteJSON(w, status, resp)
	}
}
