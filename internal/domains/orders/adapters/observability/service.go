package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

const tracerName = "github.com/smartinix/order-service/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) SubmitOrder(ctx context.Context, isbn string, quantity int) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.SubmitOrder",
		trace.WithAttributes(attribute.String("order.book_isbn", isbn), attribute.Int("order.quantity", quantity)))
	defer span.End()

	s.logInfo(ctx, "submitting order", slog.String("book.isbn", isbn), slog.Int("quantity", quantity))
	result, err := s.inner.SubmitOrder(ctx, isbn, quantity)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to submit order", slog.String("book.isbn", isbn))
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID), attribute.String("order.status", string(result.Status)))
	s.metrics.recordSubmitted(ctx, result.Status)
	s.logInfo(ctx, "order submitted", slog.Int64("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) GetAllOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetAllOrders",
		trace.WithAttributes(attribute.String("order.created_by", userID)))
	defer span.End()

	result, err := s.inner.GetAllOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("user.id", userID))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

// ConsumeDispatched delegates to the core service and counts the orders it
// emits. Per-message spans are not opened; the stream is long-lived.
func (s *Service) ConsumeDispatched(ctx context.Context, messages <-chan domain.OrderDispatchedMessage) <-chan domain.Order {
	inner := s.inner.ConsumeDispatched(ctx, messages)
	out := make(chan domain.Order)
	go func() {
		defer close(out)
		for order := range inner {
			s.metrics.recordDispatched(ctx)
			s.logInfo(ctx, "order marked dispatched", slog.Int64("order.id", order.ID))
			select {
			case out <- order:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersSubmitted  metric.Int64Counter
	ordersDispatched metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersSubmitted, _ := m.Int64Counter("orders.service.orders_submitted", metric.WithDescription("Number of orders submitted"))
	ordersDispatched, _ := m.Int64Counter("orders.service.orders_dispatched", metric.WithDescription("Number of orders marked dispatched"))
	return serviceMetrics{ordersSubmitted: ordersSubmitted, ordersDispatched: ordersDispatched}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context, status domain.Status) {
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordDispatched(ctx context.Context) {
	if m.ordersDispatched != nil {
		m.ordersDispatched.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
