package main

import (
	"context"
	"log"

	"github.com/smartinix/order-service/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("order API failed: %v", err)
	}
}
