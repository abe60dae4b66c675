package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

// Service orchestrates the order lifecycle: submission against the catalog,
// listing per user, and consumption of dispatch notifications.
type Service struct {
	catalog   ports.Catalog
	repo      ports.Repository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

type Option func(*Service)

// WithLogger overrides the logger used for fire-and-forget publish results.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(catalog ports.Catalog, repo ports.Repository, publisher ports.EventPublisher, opts ...Option) *Service {
	s := &Service{
		catalog:   catalog,
		repo:      repo,
		publisher: publisher,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitOrder looks the ISBN up in the catalog, persists an accepted order
// when the book exists or a rejected one when it does not, and publishes an
// accepted-order event. Publish failures are logged, never propagated; the
// persisted order is returned either way.
func (s *Service) SubmitOrder(ctx context.Context, isbn string, quantity int) (domain.Order, error) {
	book, err := s.catalog.GetBookByISBN(ctx, isbn)
	if err != nil {
		return domain.Order{}, fmt.Errorf("catalog lookup for ISBN %s: %w", isbn, err)
	}

	var order domain.Order
	if book != nil {
		order = domain.BuildAcceptedOrder(*book, quantity)
	} else {
		order = domain.BuildRejectedOrder(isbn, quantity)
	}

	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	s.publishOrderAcceptedEvent(ctx, saved)
	return saved, nil
}

// GetAllOrders lists the orders created by the given user.
func (s *Service) GetAllOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.FindAllByCreatedBy(ctx, userID)
}

// ConsumeDispatched processes an incoming stream of dispatch notifications.
// For each message the named order is loaded, transitioned to dispatched,
// and saved; the updated order is emitted on the returned channel. Unknown
// identifiers are dropped. Save failures (including version conflicts from
// racing consumers) skip the message; at-least-once redelivery by the
// message broker is the only retry.
func (s *Service) ConsumeDispatched(ctx context.Context, messages <-chan domain.OrderDispatchedMessage) <-chan domain.Order {
	out := make(chan domain.Order)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				order, ok := s.markDispatched(ctx, msg.OrderID)
				if !ok {
					continue
				}
				select {
				case out <- order:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (s *Service) markDispatched(ctx context.Context, orderID int64) (domain.Order, bool) {
	existing, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to load order for dispatch", slog.Int64("order.id", orderID), slog.String("error", err.Error()))
		}
		return domain.Order{}, false
	}
	saved, err := s.repo.Save(ctx, existing.Dispatched())
	if err != nil {
		s.logger.WarnContext(ctx, "failed to save dispatched order", slog.Int64("order.id", orderID), slog.String("error", err.Error()))
		return domain.Order{}, false
	}
	return saved, true
}

func (s *Service) publishOrderAcceptedEvent(ctx context.Context, order domain.Order) {
	if order.Status != domain.StatusAccepted {
		return
	}
	msg := domain.OrderAcceptedMessage{OrderID: order.ID}
	if err := s.publisher.Send(ctx, domain.OrderAcceptedStream, msg); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order accepted event", slog.Int64("order.id", order.ID), slog.String("error", err.Error()))
		return
	}
	s.logger.InfoContext(ctx, "order accepted event published", slog.Int64("order.id", order.ID))
}

var _ ports.Service = (*Service)(nil)
