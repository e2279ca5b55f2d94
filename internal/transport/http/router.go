package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onsightnow/internal/platform/health"
	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/metrics"
	"onsightnow/pkg/platform/middleware/device"
	"onsightnow/pkg/platform/middleware/metadata"
	"onsightnow/pkg/platform/middleware/request"
	"onsightnow/pkg/platform/middleware/requesttime"
)

// RouterConfig collects everything the router mounts.
type RouterConfig struct {
	Actions        *ActionHandler
	Launch         *LaunchHandler
	Health         *health.Handler
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	TrustedProxies []netip.Prefix
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(metadata.NewMiddleware(&metadata.Config{TrustedProxies: cfg.TrustedProxies}).Handler)
	r.Use(device.Device)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(cfg.Logger))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		r.Use(request.ContentTypeJSON)
		r.Use(request.Latency(cfg.Metrics))

		if cfg.Actions != nil {
			cfg.Actions.Register(r)
		}
		if cfg.Launch != nil {
			cfg.Launch.Register(r)
		}
	})
	return r
}
