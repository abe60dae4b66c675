package application

import (
	"errors"
	"fmt"

	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

// ErrPersistence signals the order store rejected or failed a write.
var ErrPersistence = errors.New("order persistence failed")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrVersionConflict) {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return err
}
