package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lox/betteridle/cmd/betteridle/shared"
	"github.com/lox/betteridle/internal/config"
	"github.com/lox/betteridle/internal/server"
	"github.com/lox/betteridle/registry"
)

// ServeCmd hosts internal/server's websocket solve/execute server. Grounded
// on cmd/pokerforbots/server.go's Cmd shape: load config, build the
// component, log the listen address, run until a signal cancels the
// context.
type ServeCmd struct {
	Catalog string `kong:"required,help='Path to a JSON content pack'"`
	Config  string `kong:"default='betteridle.hcl',help='Path to an HCL config file (defaults applied if absent)'"`
	Debug   bool   `kong:"help='Enable debug logging'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	catalog, err := registry.LoadCatalog(c.Catalog)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	srv := server.New(server.Config{
		Catalog:     catalog,
		AuthToken:   cfg.Server.AuthToken,
		MaxSessions: cfg.Server.MaxSessions,
		Logger:      logger,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", srv)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	ctx := shared.SetupSignalHandler(logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return httpServer.Shutdown(context.Background())
	case err := <-serverErr:
		return err
	}
}
