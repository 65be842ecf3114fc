// Package cli holds process start-up helpers and the interactive menu.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expenses/internal/config"
	applog "expenses/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the application logger from config and installs it as
// the slog default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = applog.DefaultConfig().Level
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure.
func LoadAndValidateConfig() *config.Config {
	bootstrap := applog.New(applog.DefaultConfig())

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Error("Configuration load failed",
			applog.FieldErrorType, applog.ErrorTypeConfiguration, applog.FieldError, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		bootstrap.Error("Configuration validation failed",
			applog.FieldErrorType, applog.ErrorTypeConfiguration, applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// GracefulShutdown runs cleanup and exits when SIGINT or SIGTERM arrives.
// The menu blocks on terminal reads, so the signal cannot simply cancel a
// context. Call the returned stop func once the menu returns normally.
func GracefulShutdown(logger *applog.Logger, cleanup func()) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			if cleanup != nil {
				cleanup()
			}
			os.Exit(130)
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigChan)
		cancel()
	}
}
