package plugin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"onsightnow/internal/onsight"
	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/metrics"
	"onsightnow/internal/platform/tracer"
	dErrors "onsightnow/pkg/domain-errors"
	"onsightnow/pkg/platform/middleware/requesttime"
)

// Plugin is one host-invoked operation.
type Plugin interface {
	Name() string
	// Execute runs the operation to completion before returning.
	Execute(ctx context.Context, host Host) error
}

// base carries what both plugins share. The HTTP client is used for the
// token endpoint and the API calls of every invocation.
type base struct {
	httpClient *http.Client
	logger     *slog.Logger
	tracer     tracer.Tracer
	metrics    *metrics.Metrics
	now        func(ctx context.Context) time.Time
}

// Option configures a plugin.
type Option func(*base)

// WithHTTPClient sets the outbound client.
func WithHTTPClient(c *http.Client) Option {
	return func(b *base) { b.httpClient = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *base) { b.logger = l }
}

func WithTracer(t tracer.Tracer) Option {
	return func(b *base) { b.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) { b.metrics = m }
}

// WithClock overrides the meeting start time source. By default the start is
// the request time when one is set, else time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = func(context.Context) time.Time { return now() } }
}

func newBase(opts []Option) base {
	b := base{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.Discard(),
		tracer:     tracer.NewNoop(),
		now:        requesttime.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) client(cfg Config) *onsight.Client {
	tokens := onsight.NewTokenProvider(
		onsight.WithTokenHTTPClient(b.httpClient),
		onsight.WithTokenLogger(b.logger),
		onsight.WithTokenTracer(b.tracer),
		onsight.WithTokenMetrics(b.metrics),
	)
	return onsight.NewClient(cfg.Client(),
		onsight.WithHTTPClient(b.httpClient),
		onsight.WithTokenSource(tokens),
		onsight.WithLogger(b.logger),
		onsight.WithTracer(b.tracer),
		onsight.WithMetrics(b.metrics),
	)
}

// run drives fn in an errgroup and waits for it, so Execute never returns
// while outbound work is still in flight.
func (b *base) run(ctx context.Context, name string, host Host, fn func(ctx context.Context) error) (err error) {
	ctx, span := b.tracer.Start(ctx, tracer.SpanPlugin, tracer.String(tracer.AttrPlugin, name))
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailure
			host.Trace("%s failed: %v", name, err)
			b.logger.ErrorContext(ctx, "plugin execution failed",
				"plugin", name,
				"code", string(dErrors.CodeOf(err)),
				"error", err,
			)
		} else {
			b.logger.InfoContext(ctx, "plugin execution completed",
				"plugin", name,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
		b.metrics.IncrementPluginExecution(name, outcome)
		span.End(err)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fn(gctx) })
	return g.Wait()
}
