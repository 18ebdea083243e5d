// Command smartnotes-devserver runs an in-memory backend for local use and
// manual testing of the client.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/electr1fy0/smartnotes/config"
	"github.com/electr1fy0/smartnotes/devserver"
	"github.com/electr1fy0/smartnotes/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "smartnotes-devserver:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	addr := flag.String("addr", cfg.DevAddr, "listen address")
	level := flag.String("log-level", "debug", "log level")
	flag.Parse()

	log, err := logging.NewConsole(os.Stderr, *level)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           devserver.New(log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", *addr).Msg("dev server listening, routes under /api")
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

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
