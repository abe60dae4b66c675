// Package dispatcher hosts the process that consumes dispatch notifications
// and transitions orders to dispatched.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	catalogclient "github.com/smartinix/order-service/internal/clients/http/catalog"
	ordersmemory "github.com/smartinix/order-service/internal/domains/orders/adapters/memory"
	ordersredis "github.com/smartinix/order-service/internal/domains/orders/adapters/messaging/redisstream"
	ordersobs "github.com/smartinix/order-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/smartinix/order-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/smartinix/order-service/internal/domains/orders/application"
	ordersports "github.com/smartinix/order-service/internal/domains/orders/ports"
	platformobservability "github.com/smartinix/order-service/internal/platform/observability"
	platformpostgres "github.com/smartinix/order-service/internal/platform/postgres"
	platformredis "github.com/smartinix/order-service/internal/platform/redis"
)

// Run boots the dispatch consumer loop and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	const serviceName = "order-service-dispatcher"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	client, err := platformredis.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer client.Close()

	repo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	catalog, err := catalogclient.NewClient(cfg.CatalogURL, nil)
	if err != nil {
		return fmt.Errorf("failed to configure catalog client: %w", err)
	}

	coreService := ordersapp.NewService(catalog, repo, ordersredis.NewPublisher(client), ordersapp.WithLogger(logger))
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.domains.orders.application")),
	)

	consumer := ordersredis.NewConsumer(client, orderService,
		ordersredis.WithConsumerLogger(logger),
		ordersredis.WithGroup(cfg.ConsumerGroup),
	)
	logger.Info("dispatcher starting", slog.String("group", cfg.ConsumerGroup))
	return consumer.Run(ctx)
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("dispatcher failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("dispatcher failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("dispatcher order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}
