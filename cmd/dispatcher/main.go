package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/smartinix/order-service/internal/app/dispatcher"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := dispatcher.Run(ctx); err != nil {
		log.Fatalf("dispatcher failed: %v", err)
	}
}
