package ports

import (
	"context"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
)

// Service exposes the order use cases to adapters.
type Service interface {
	// SubmitOrder looks the ISBN up in the catalog, persists an accepted or
	// rejected order, and publishes an accepted-order event when applicable.
	SubmitOrder(ctx context.Context, isbn string, quantity int) (domain.Order, error)
	// GetAllOrders lists the orders created by the given user.
	GetAllOrders(ctx context.Context, userID string) ([]domain.Order, error)
	// ConsumeDispatched transitions orders named by the incoming messages to
	// dispatched, emitting each updated order. Messages naming unknown
	// orders are dropped. The returned channel closes when the input closes
	// or ctx is cancelled.
	ConsumeDispatched(ctx context.Context, messages <-chan domain.OrderDispatchedMessage) <-chan domain.Order
}
