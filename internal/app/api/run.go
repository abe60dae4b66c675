package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	catalogclient "github.com/smartinix/order-service/internal/clients/http/catalog"
	ordersmemory "github.com/smartinix/order-service/internal/domains/orders/adapters/memory"
	ordersredis "github.com/smartinix/order-service/internal/domains/orders/adapters/messaging/redisstream"
	ordersobs "github.com/smartinix/order-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/smartinix/order-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/smartinix/order-service/internal/domains/orders/application"
	ordersports "github.com/smartinix/order-service/internal/domains/orders/ports"
	platformauth "github.com/smartinix/order-service/internal/platform/auth"
	platformobservability "github.com/smartinix/order-service/internal/platform/observability"
	platformpostgres "github.com/smartinix/order-service/internal/platform/postgres"
	platformredis "github.com/smartinix/order-service/internal/platform/redis"
	"github.com/smartinix/order-service/internal/server"
)

// Run boots the order HTTP API with observability, repositories, the
// catalog client, and the event publisher wired.
func Run(ctx context.Context) error {
	const serviceName = "order-service-api"
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

	verifier, err := platformauth.NewVerifier([]byte(cfg.JWTKey), cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		return fmt.Errorf("failed to configure token verifier: %w", err)
	}

	repo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	publisher, cleanupPublisher := buildEventPublisher(ctx, cfg, logger)
	defer cleanupPublisher()

	catalog, err := catalogclient.NewClient(cfg.CatalogURL, nil)
	if err != nil {
		return fmt.Errorf("failed to configure catalog client: %w", err)
	}

	coreService := ordersapp.NewService(catalog, repo, publisher, ordersapp.WithLogger(logger))
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.domains.orders.application")),
	)

	router := server.NewRouter(
		server.NewOrderAPI(orderService),
		server.RequireBearerToken(verifier),
		otelgin.Middleware(serviceName),
	)
	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func buildEventPublisher(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, order events will be dropped")
		return dropPublisher{logger: logger}, func() {}
	}
	client, err := platformredis.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("failed to connect to redis, order events will be dropped", slog.String("error", err.Error()))
		return dropPublisher{logger: logger}, func() {}
	}
	logger.Info("event publisher configured with redis streams", slog.String("addr", cfg.RedisAddr))
	return ordersredis.NewPublisher(client), func() { _ = client.Close() }
}

// dropPublisher stands in when no broker is configured. Publishing is
// fire-and-forget by contract, so dropping with a log entry is acceptable
// for local runs.
type dropPublisher struct {
	logger *slog.Logger
}

func (p dropPublisher) Send(ctx context.Context, stream string, _ any) error {
	p.logger.WarnContext(ctx, "event publishing disabled, dropping event", slog.String("stream", stream))
	return nil
}
