package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nafsma/legis-tracker/app/api"
	"github.com/nafsma/legis-tracker/app/cfg"
	"github.com/nafsma/legis-tracker/app/state"
)

type serveCommand struct{}

// Execute starts the read-only HTTP status server and blocks until
// interrupted, then shuts down gracefully.
func (c *serveCommand) Execute(args []string) error {
	appCfg := cfg.Get()

	store := state.NewStore(appCfg.StatePath)
	handler := api.NewHandler(store, appCfg.OutputDir)
	engine := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP status server", "port", appCfg.Port, "version", appCfg.Version)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
