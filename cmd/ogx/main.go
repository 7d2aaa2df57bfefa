// Command ogx serves Open Graph preview images rendered from templates.
//
// Usage:
//
//	ogx [-config ogx.yaml] [-env .env]
//
// See package config for the settings and their environment overrides.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jonwraymond/ogimage/config"
	"github.com/jonwraymond/ogimage/observe"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "ogx.yaml", "path to the YAML configuration file")
	envPath := flag.String("env", ".env", "dotenv file loaded before the configuration")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *envPath); err != nil {
		fmt.Fprintln(os.Stderr, "ogx:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, envPath string) error {
	if err := loadDotenv(envPath); err != nil {
		return err
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}

	obs, err := observe.NewObserver(ctx, cfg.Observe(version))
	if err != nil {
		return fmt.Errorf("observe: %w", err)
	}
	logger := obs.Logger()

	app, err := build(cfg, obs)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           app.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening",
			observe.Field{Key: "addr", Value: cfg.Server.Addr},
			observe.Field{Key: "version", Value: version},
			observe.Field{Key: "cache", Value: cfg.Cache.Backend},
			observe.Field{Key: "admin", Value: cfg.Admin.Enabled()},
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	logger.Info(shutdownCtx, "shutting down")

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	app.drain(shutdownCtx, logger)
	if err := obs.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("observe shutdown: %w", err))
	}
	return errors.Join(errs...)
}

// loadDotenv loads path into the environment without overriding variables
// that are already set. A missing file is ignored.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// drain waits for background cache writes, up to ctx's deadline.
func (a *app) drain(ctx context.Context, logger observe.Logger) {
	done := make(chan struct{})
	go func() {
		a.orchestrator.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(ctx, "cache writes still pending at shutdown",
			observe.Field{Key: "error", Value: ctx.Err().Error()})
	}
}
