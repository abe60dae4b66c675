package memory

import (
	"context"
	"sync"
	"time"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
	"github.com/smartinix/order-service/internal/platform/auth"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
	now    func() time.Time
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]domain.Order{}, now: time.Now}
}

func (r *Repository) Save(ctx context.Context, order domain.Order) (domain.Order, error) {
	subject := auth.SubjectFromContext(ctx)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == 0 {
		r.nextID++
		order.ID = r.nextID
		order.Version = 0
		order.CreatedDate = now
		order.CreatedBy = subject
	} else {
		existing, ok := r.orders[order.ID]
		if !ok {
			return domain.Order{}, ports.ErrNotFound
		}
		if existing.Version != order.Version {
			return domain.Order{}, ports.ErrVersionConflict
		}
		order.Version++
		order.CreatedDate = existing.CreatedDate
		order.CreatedBy = existing.CreatedBy
	}
	order.LastModifiedDate = now
	if subject != "" {
		order.LastModifiedBy = subject
	}
	r.orders[order.ID] = clone(order)
	return clone(order), nil
}

func (r *Repository) FindByID(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	return clone(order), nil
}

func (r *Repository) FindAllByCreatedBy(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]domain.Order, 0)
	// Insertion order, since IDs are assigned sequentially.
	for id := int64(1); id <= r.nextID; id++ {
		order, ok := r.orders[id]
		if !ok || order.CreatedBy != userID {
			continue
		}
		orders = append(orders, clone(order))
	}
	return orders, nil
}

// clone deep-copies the pointer fields so callers never alias stored state.
func clone(order domain.Order) domain.Order {
	if order.BookName != nil {
		name := *order.BookName
		order.BookName = &name
	}
	if order.BookPrice != nil {
		price := *order.BookPrice
		order.BookPrice = &price
	}
	return order
}
