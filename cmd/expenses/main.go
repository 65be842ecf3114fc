package main

import (
	"context"
	"os"

	"expenses/internal/backend"
	"expenses/internal/cli"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	svc := services.NewExpenseService(result.Store, services.WithLogger(logger))
	closeStore := func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close expense store", applog.FieldError, err)
		}
	}
	stop := cli.GracefulShutdown(logger, closeStore)

	logger.Info("Starting expense tracker",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.DataBackend)

	menu := cli.NewMenu(svc, os.Stdin, os.Stdout, cli.MenuOptions{
		ExportCSVPath:  cfg.ExportCSVPath,
		ChartPath:      cfg.ChartPath,
		CurrencySymbol: cfg.CurrencySymbol,
	}, logger)
	runErr := menu.Run(ctx)

	stop()
	closeStore()

	if runErr != nil {
		logger.Error("Menu stopped", applog.FieldError, runErr)
		os.Exit(1)
	}
	logger.Info("Expense tracker stopped", applog.FieldOperation, applog.OpShutdown)
}
