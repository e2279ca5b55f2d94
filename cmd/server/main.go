package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/oauth2/clientcredentials"

	"onsightnow/internal/launch"
	"onsightnow/internal/platform/config"
	"onsightnow/internal/platform/health"
	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/metrics"
	"onsightnow/internal/platform/tracer"
	"onsightnow/internal/plugin"
	"onsightnow/internal/recordstore"
	"onsightnow/internal/resolver"
	httptransport "onsightnow/internal/transport/http"
	"onsightnow/pkg/platform/middleware/metadata"
)

// main wires the record store, resolver, plugins and HTTP surface and keeps
// the server lifecycle small.
func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	tr := tracer.NewOTel()

	h := health.New(cfg.Environment)
	store, err := newRecordStore(ctx, cfg, log, h)
	if err != nil {
		return err
	}

	trusted, err := metadata.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return err
	}

	pluginOpts := []plugin.Option{
		plugin.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		plugin.WithLogger(log),
		plugin.WithTracer(tr),
		plugin.WithMetrics(m),
	}
	meeting := plugin.NewMeetingPlugin(pluginOpts...)
	chat := plugin.NewChatPlugin(pluginOpts...)
	hostEnv := func() map[string]string { return plugin.EnvironmentFrom(os.Environ()) }

	res := resolver.New(store,
		resolver.WithLogger(log),
		resolver.WithTracer(tr),
		resolver.WithMetrics(m),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Actions:        httptransport.NewActionHandler(meeting, chat, hostEnv, log),
		Launch:         httptransport.NewLaunchHandler(launch.New(res, meeting, hostEnv, log), log),
		Health:         h,
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		TrustedProxies: trusted,
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting http server",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"record_store", cfg.RecordStore,
	)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func newRecordStore(ctx context.Context, cfg config.Server, log *slog.Logger, h *health.Handler) (resolver.RecordStore, error) {
	switch cfg.RecordStore {
	case config.StoreDataverse:
		cc := clientcredentials.Config{
			ClientID:     cfg.Dataverse.ClientID,
			ClientSecret: cfg.Dataverse.ClientSecret,
			TokenURL:     cfg.Dataverse.TokenURL,
			Scopes:       []string{cfg.DataverseScope()},
		}
		client := cc.Client(ctx)
		client.Timeout = cfg.RequestTimeout
		store := recordstore.NewDataverseStore(recordstore.DataverseConfig{
			BaseURL:    cfg.Dataverse.BaseURL,
			HTTPClient: client,
			Logger:     log,
		})
		h.RegisterCheck("record_store", store.Ping)
		return store, nil
	default:
		store := recordstore.NewMemoryStore()
		if cfg.FixturePath != "" {
			f, err := os.Open(cfg.FixturePath)
			if err != nil {
				return nil, fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()
			if store, err = recordstore.LoadFixture(f); err != nil {
				return nil, err
			}
		}
		log.Info("memory record store loaded", "records", store.Len())
		h.RegisterCheck("record_store", func(context.Context) error { return nil })
		return store, nil
	}
}
