package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/smartinix/order-service/internal/platform/migrations"
	platformpostgres "github.com/smartinix/order-service/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot apply schema")
	}

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	log.Printf("schema migration completed")
}
