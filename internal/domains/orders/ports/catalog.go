package ports

import (
	"context"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
)

// Catalog looks up book metadata in the external catalog service.
// A nil book with a nil error means the ISBN is unknown; errors are
// reserved for transport or protocol failures.
type Catalog interface {
	GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error)
}
