package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/shipment-dashboard/internal/config"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/event"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/http"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/log"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/persist"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/query"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/relay"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/service"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/kv"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/storage/mq"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/store"
	"github.com/tuanvumaihuynh/shipment-dashboard/internal/telemetry"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/cmdutil"
	"github.com/tuanvumaihuynh/shipment-dashboard/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running server application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		HTTP     config.HTTP
		View     config.View
		Storage  config.Storage
		Postgres config.Postgres
		Redis    config.Redis
		Kafka    config.Kafka
		Relay    config.Relay
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log, os.Stdout)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	backend, err := kv.Open(ctx, cfg.Storage, cfg.Postgres, cfg.Redis)
	if err != nil {
		return fmt.Errorf("error opening %s storage: %w", cfg.Storage.Driver, err)
	}
	defer backend.Close()

	adapter := persist.NewAdapter(logger, backend.Slot, cfg.Storage.Key)
	observers := []store.Observer{adapter}

	cleanupRelay := relay.CleanupFunc(func() {})
	if cfg.Kafka.Enabled {
		kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
		if err != nil {
			return fmt.Errorf("error creating kafka producer: %w", err)
		}
		defer kafkaProducer.Close()

		relaySvc := relay.NewService(cfg.Relay, logger, kafkaProducer)
		cleanupRelay = relaySvc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		observers = append(observers, event.NewPublisher(logger, relaySvc, cfg.Kafka.TopicPrefix))
	}

	productStore := store.New(logger, observers...)
	productStore.SetLoading(true)

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	queries := query.New(logger, productStore, query.NewETAFormatter(cfg.View.Timezone))
	productService := service.NewProductService(logger, productStore, queries, v, service.Options{
		ValidateFutureETA: cfg.View.ValidateFutureETA,
	})

	svc := http.New(cfg.HTTP, cfg.View, logger, productService, backend.Checkers...)
	cleanupHTTP, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	go productStore.Hydrate(ctx, adapter)

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanupHTTP(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}
	logger.InfoContext(ctx, "http service is stopped")

	logger.InfoContext(ctx, "relay service is shutting down")
	cleanupRelay()
	logger.InfoContext(ctx, "relay service is stopped")

	return nil
}
