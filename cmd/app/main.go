package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "fulfillment",
		Short:         "Consignment warehouse fulfillment service",
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to read before the environment")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API, background jobs and the sales consumer",
			RunE: func(c *cobra.Command, _ []string) error {
				cfg, err := cmd.LoadConfig(envFile)
				if err != nil {
					return err
				}
				return serve(c.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(c *cobra.Command, _ []string) error {
				cfg, err := cmd.LoadConfig(envFile)
				if err != nil {
					return err
				}
				gormDB, sqlxDB, err := cmd.OpenDatabase(cfg)
				if err != nil {
					return err
				}
				defer sqlxDB.Close()
				if err = postgres.Migrate(c.Context(), gormDB); err != nil {
					return err
				}
				newLogger(cfg).Info("schema migrated", "database", cfg.DBName)
				return nil
			},
		},
		&cobra.Command{
			Use:   "graph",
			Short: "Print the product and shipment status graphs",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				out := c.OutOrStdout()
				if err := product.Graph.Render(out); err != nil {
					return err
				}
				fmt.Fprintln(out)
				return shipment.Graph.Render(out)
			},
		},
	)
	return root
}

func newLogger(cfg cmd.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).
		With("service", "fulfillment")
}

func serve(ctx context.Context, cfg cmd.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg)

	app, err := cmd.NewCompositionRoot(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close resources", "error", err)
		}
	}()

	e, err := httpin.NewEcho(app.CreateHTTPServer(), logger, cfg.EchoLevel())
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	consumer, saleHandler := app.CreateSalesConsumer()
	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- consumer.Start(ctx, saleHandler.Handle)
	}()

	serverDone := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
			return
		}
		serverDone <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err = <-serverDone:
		stop()
		if err != nil {
			logger.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := e.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("http server shutdown", "error", shutdownErr)
	}
	if consumerErr := <-consumerDone; consumerErr != nil {
		logger.Error("sales consumer stopped", "error", consumerErr)
	}
	return err
}
