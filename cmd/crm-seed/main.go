package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
	"github.com/tuanvumaihuynh/graphql-crm/internal/log"
	"github.com/tuanvumaihuynh/graphql-crm/internal/repository"
	"github.com/tuanvumaihuynh/graphql-crm/internal/service"
	"github.com/tuanvumaihuynh/graphql-crm/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running seed application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Seed     config.Seed
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	s := seeder{
		cfg:    cfg.Seed,
		logger: logger,
		customerSvc: service.NewCustomerService(logger, dbClient,
			repository.NewCustomerRepository(dbClient), outboxMsgRepository),
		productSvc: service.NewProductService(logger, dbClient,
			repository.NewProductRepository(dbClient), outboxMsgRepository),
	}

	if err := s.seed(ctx); err != nil {
		return fmt.Errorf("error seeding database: %w", err)
	}

	return nil
}
