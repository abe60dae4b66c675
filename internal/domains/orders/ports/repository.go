package ports

import (
	"context"
	"errors"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrVersionConflict = errors.New("order version conflict")
)

// Repository persists orders. Save inserts when the order has no ID and
// otherwise updates guarded by the optimistic version check, returning
// ErrVersionConflict when the stored version differs from the one the
// caller last read. Save assigns identifier, timestamps, owner (taken from
// the identity carried by ctx), and version.
type Repository interface {
	Save(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByID(ctx context.Context, id int64) (domain.Order, error)
	FindAllByCreatedBy(ctx context.Context, userID string) ([]domain.Order, error)
}
