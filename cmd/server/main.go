// server exposes the deck code toolkit over HTTP.
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

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"github.com/youruser/artifactdeck/internal/api"
	"github.com/youruser/artifactdeck/internal/cards"
	"github.com/youruser/artifactdeck/internal/config"
	"github.com/youruser/artifactdeck/internal/logging"
	"github.com/youruser/artifactdeck/internal/sanitize"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath, addr string
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config (default: $"+config.EnvPath+")")
	flagSet.StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	// Card data is optional: without it decode, encode and QR still work.
	db, err := cards.LoadDatabase(cfg.Cards.DataDir, cfg.Cards.CachePath, logger)
	if err != nil {
		logger.Warn("card database unavailable", "dir", cfg.Cards.DataDir, "error", err)
		db = nil
	}

	policy, err := sanitize.New(cfg.Sanitize.Policy)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewServer(api.Options{
		Cards:     db,
		Sanitizer: policy,
		Logger:    logger,
		Config:    cfg,
	}))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr, "sanitize", policy.Name())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
