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

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/titlematch/pkg/api"
	"github.com/hazyhaar/titlematch/pkg/config"
	"github.com/hazyhaar/titlematch/pkg/engine"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  "Start the HTTP server. SIGHUP reloads the catalog and metrics from the config file; SIGINT or SIGTERM shut down gracefully.",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, logger, err := loadConfig(cmd, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := cfg.BuildEngine(ctx)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	holder := engine.NewHolder(e)
	logger.Info("catalog loaded", "kind", cfg.Catalog.Kind, "titles", len(e.Titles()), "threshold", e.Threshold())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(holder, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	defer signal.Stop(sighup)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("titlematch listening", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	// SIGHUP: rebuild the engine from the config file. The listen address is not reloaded.
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-sighup:
				logger.Info("SIGHUP received, reloading catalog")
				err := holder.Reload(func() (*engine.Engine, error) {
					next, err := config.Load(cfgPath, logger)
					if err != nil {
						return nil, err
					}
					return next.BuildEngine(gctx)
				})
				if err != nil {
					logger.Error("reload failed", "error", err)
					continue
				}
				logger.Info("catalog reloaded", "titles", len(holder.Titles()), "threshold", holder.Threshold())
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
