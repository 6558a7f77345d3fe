package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nameorigin/internal/nameorigin/handler"
	"nameorigin/internal/platform/metrics"
	"nameorigin/pkg/platform/httputil"
	"nameorigin/pkg/platform/middleware/auth"
	"nameorigin/pkg/platform/middleware/request"
	"nameorigin/pkg/platform/middleware/requesttime"
)

// RequestTimeout bounds every API request.
const RequestTimeout = 30 * time.Second

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the router wires together.
type Deps struct {
	Handler   *handler.Handler
	Validator auth.JWTValidator
	Logger    *slog.Logger
	Metrics   *metrics.HTTP
	// APIPrefix serves the API a second time under this path, e.g. "/api/v1".
	APIPrefix string
	Health    map[string]HealthCheck
	// MetricsHandler defaults to the Prometheus default gatherer.
	MetricsHandler http.Handler
}

// NewRouter builds the HTTP surface: unauthenticated /healthz and /metrics,
// and the bearer-protected API at the root and under APIPrefix.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(d.Logger))
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(d.Logger))
	r.Use(d.Metrics.Middleware)
	r.Use(chimw.StripSlashes)

	r.Get("/healthz", healthHandler(d.Health))
	metricsHandler := d.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	api := func(r chi.Router) {
		r.Use(request.Timeout(RequestTimeout))
		r.Use(auth.RequireAuth(d.Validator, d.Logger))
		d.Handler.Register(r)
	}
	r.Group(api)
	if prefix := strings.TrimRight(d.APIPrefix, "/"); prefix != "" {
		r.Route(prefix, api)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "not_found"})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
