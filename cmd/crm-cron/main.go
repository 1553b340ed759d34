// Command crm-cron runs the CRM maintenance jobs. With no arguments it keeps
// every job on its interval until interrupted; "crm-cron <job>..." runs the
// named jobs once and exits.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/crmclient"
	"github.com/tuanvumaihuynh/graphql-crm/internal/cron"
	"github.com/tuanvumaihuynh/graphql-crm/internal/log"
	"github.com/tuanvumaihuynh/graphql-crm/internal/telemetry"
	"github.com/tuanvumaihuynh/graphql-crm/pkg/cmdutil"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Printf("error running cron application: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log  config.Log
		Cron config.Cron
		Otel config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	client := crmclient.New(cfg.Cron, logger)
	jobs := cron.NewJobs(cfg.Cron, client, logger)
	scheduler := cron.NewScheduler(logger, jobs.All()...)

	if len(args) > 0 {
		if err := scheduler.RunOnce(ctx, args...); err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(scheduler.Names(), ", "))
		}
		return nil
	}

	interruptChan := cmdutil.InterruptChan()

	cleanup := scheduler.Run(ctx)
	logger.InfoContext(ctx, "cron service started", slog.String("graphql_url", cfg.Cron.GraphQLURL))

	<-interruptChan

	logger.InfoContext(ctx, "cron service is shutting down")
	cleanup()

	logger.InfoContext(ctx, "cron service is stopped")

	return nil
}
