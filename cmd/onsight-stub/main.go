// Command onsight-stub serves a local stand-in for the OnsightNow token,
// meetings and Ida chat endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"onsightnow/internal/onsightstub"
	"onsightnow/internal/platform/logger"
	"onsightnow/pkg/platform/middleware/request"
)

func main() {
	_ = godotenv.Load()

	cfg, err := onsightstub.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	stub, err := onsightstub.New(cfg, 0, onsightstub.WithLogger(log))
	if err != nil {
		log.Error("stub init failed", "error", err)
		os.Exit(1)
	}

	handler := request.Recovery(log)(request.RequestID(request.Logger(log)(stub.Routes())))
	srv := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting onsight stub", "addr", cfg.Addr, "client_id", cfg.ClientID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
