package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/cli"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/log"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/persist"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/query"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/service"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/kv"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/store"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/validator"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprint(os.Stderr, cli.Usage())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	type Config struct {
		Log      config.Log
		View     config.View
		Storage  config.Storage
		Postgres config.Postgres
		Redis    config.Redis
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// stdout carries command output, logs go to stderr
	logger := log.NewSlogLogger(cfg.Log, os.Stderr)

	backend, err := kv.Open(ctx, cfg.Storage, cfg.Postgres, cfg.Redis)
	if err != nil {
		return fmt.Errorf("error opening %s storage: %w", cfg.Storage.Driver, err)
	}
	defer backend.Close()

	adapter := persist.NewAdapter(logger, backend.Slot, cfg.Storage.Key)
	productStore := store.New(logger, adapter)
	productStore.Hydrate(ctx, adapter)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	queries := query.New(logger, productStore, query.NewETAFormatter(cfg.View.Timezone))
	productService := service.NewProductService(logger, productStore, queries, v, service.Options{
		ValidateFutureETA: cfg.View.ValidateFutureETA,
	})

	return cli.NewRunner(productService, os.Stdin, os.Stdout, cfg.View.DefaultPageSize).Run(ctx, args)
}
