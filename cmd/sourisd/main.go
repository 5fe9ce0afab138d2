package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntNail/sourisdb/db"
	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/BurntNail/sourisdb/internal/obs"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := obs.NewProduction(cfg.logLevel)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	baseLocation := cfg.baseLocation
	if baseLocation == "" {
		baseLocation, err = db.ResolveBaseLocation()
		if err != nil {
			log.Errorw("failed to resolve base location", "error", err)
			return err
		}
	}
	log.Infow("resolved base location", "path", baseLocation)

	manager, err := db.New(baseLocation, log)
	if err != nil {
		log.Errorw("failed to build database manager", "error", err)
		return err
	}
	if err := manager.Load(); err != nil {
		log.Errorw("failed to load existing databases", "error", err)
		return err
	}

	server := &http.Server{
		Addr:    cfg.listenAddr,
		Handler: httpapi.NewRouter(manager, log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", cfg.listenAddr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			log.Errorw("server error", "error", err)
			return err
		}
	case <-ctx.Done():
		log.Infow("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("error during shutdown", "error", err)
		}
	}

	if err := manager.Save(); err != nil {
		log.Errorw("failed to save databases on shutdown", "error", err)
		return err
	}

	return nil
}
