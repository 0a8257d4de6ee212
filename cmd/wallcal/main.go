package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/wallcal/internal/calendar"
	"github.com/dukerupert/wallcal/internal/config"
	"github.com/dukerupert/wallcal/internal/database"
	"github.com/dukerupert/wallcal/internal/logging"
	"github.com/dukerupert/wallcal/internal/server"
	"github.com/dukerupert/wallcal/internal/store"
)

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(args)
	case "hash-password":
		err = hashPassword(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\nUsage: wallcal [serve|hash-password] [flags]\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wallcal %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "wallcal.yaml", "path to the YAML config file")
	listen := fs.String("listen", "", "listen address, overrides config and WALLCAL_LISTEN")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if *listen != "" {
		cfg.Listen = *listen
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	cal := calendar.Open(store.NewKVStore(db), logger.With("component", "calendar"), calendar.WithView(cfg.View()))
	srv := server.New(cal, cfg, logger)

	// No WriteTimeout: /ws connections are long-lived.
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("wallcal listening", "addr", cfg.Listen, "db", cfg.DBPath, "auth", cfg.BasicAuth != nil)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	srv.Hub().Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
		return err
	}
	return nil
}
