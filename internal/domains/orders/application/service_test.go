package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
)

type fakeCatalog struct {
	books map[string]domain.Book
	err   error
}

func (f *fakeCatalog) GetBookByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	if book, ok := f.books[isbn]; ok {
		return &book, nil
	}
	return nil, nil
}

type fakeRepo struct {
	orders  map[int64]domain.Order
	nextID  int64
	saveErr error
	saves   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[int64]domain.Order{}}
}

func (f *fakeRepo) Save(_ context.Context, order domain.Order) (domain.Order, error) {
	if f.saveErr != nil {
		return domain.Order{}, f.saveErr
	}
	f.saves++
	if order.ID == 0 {
		f.nextID++
		order.ID = f.nextID
		order.CreatedDate = time.Now()
		order.CreatedBy = "bjorn"
	} else {
		order.Version++
	}
	order.LastModifiedDate = time.Now()
	order.LastModifiedBy = "bjorn"
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	return order, nil
}

func (f *fakeRepo) FindAllByCreatedBy(_ context.Context, userID string) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range f.orders {
		if order.CreatedBy == userID {
			result = append(result, order)
		}
	}
	return result, nil
}

type fakePublisher struct {
	sent []any
	err  error
}

func (f *fakePublisher) Send(_ context.Context, _ string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, payload)
	return nil
}

func TestSubmitOrder_BookFound_AcceptsAndPublishes(t *testing.T) {
	catalog := &fakeCatalog{books: map[string]domain.Book{
		"1234567890": {ISBN: "1234567890", Title: "Book A", Author: "Jane", Price: decimal.RequireFromString("9.99")},
	}}
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	svc := NewService(catalog, repo, publisher)

	saved, err := svc.SubmitOrder(context.Background(), "1234567890", 3)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, saved.Status)
	require.NotNil(t, saved.BookName)
	assert.Equal(t, "Book A - Jane", *saved.BookName)
	require.NotNil(t, saved.BookPrice)
	assert.True(t, saved.BookPrice.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 3, saved.Quantity)

	require.Len(t, publisher.sent, 1)
	assert.Equal(t, domain.OrderAcceptedMessage{OrderID: saved.ID}, publisher.sent[0])
}

func TestSubmitOrder_BookMissing_RejectsWithoutPublishing(t *testing.T) {
	catalog := &fakeCatalog{books: map[string]domain.Book{}}
	repo := newFakeRepo()
	publisher := &fakePublisher{}
	svc := NewService(catalog, repo, publisher)

	saved, err := svc.SubmitOrder(context.Background(), "0000000000", 1)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, saved.Status)
	assert.Nil(t, saved.BookName)
	assert.Nil(t, saved.BookPrice)
	assert.Empty(t, publisher.sent)
}

func TestSubmitOrder_CatalogFailurePropagates(t *testing.T) {
	transportErr := errors.New("connection refused")
	catalog := &fakeCatalog{err: transportErr}
	repo := newFakeRepo()
	svc := NewService(catalog, repo, &fakePublisher{})

	_, err := svc.SubmitOrder(context.Background(), "1234567890", 1)
	require.ErrorIs(t, err, transportErr)
	assert.Zero(t, repo.saves)
}

func TestSubmitOrder_PersistenceFailurePropagates(t *testing.T) {
	catalog := &fakeCatalog{books: map[string]domain.Book{}}
	repo := newFakeRepo()
	repo.saveErr = errors.New("write failed")
	publisher := &fakePublisher{}
	svc := NewService(catalog, repo, publisher)

	_, err := svc.SubmitOrder(context.Background(), "0000000000", 1)
	require.ErrorIs(t, err, repo.saveErr)
	assert.Empty(t, publisher.sent)
}

func TestSubmitOrder_PublishFailureDoesNotFailSubmit(t *testing.T) {
	catalog := &fakeCatalog{books: map[string]domain.Book{
		"1234567890": {ISBN: "1234567890", Title: "Book A", Author: "Jane"},
	}}
	repo := newFakeRepo()
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewService(catalog, repo, publisher)

	saved, err := svc.SubmitOrder(context.Background(), "1234567890", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, saved.Status)
}

func TestGetAllOrders_FiltersByCreator(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = domain.Order{ID: 1, CreatedBy: "bjorn"}
	repo.orders[2] = domain.Order{ID: 2, CreatedBy: "isabelle"}
	repo.orders[3] = domain.Order{ID: 3, CreatedBy: "bjorn"}
	svc := NewService(&fakeCatalog{}, repo, &fakePublisher{})

	orders, err := svc.GetAllOrders(context.Background(), "bjorn")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, "bjorn", order.CreatedBy)
	}
}

func TestConsumeDispatched_TransitionsKnownOrders(t *testing.T) {
	repo := newFakeRepo()
	name := "Book A - Jane"
	repo.orders[7] = domain.Order{ID: 7, BookISBN: "1234567890", BookName: &name, Quantity: 1, Status: domain.StatusAccepted}
	svc := NewService(&fakeCatalog{}, repo, &fakePublisher{})

	in := make(chan domain.OrderDispatchedMessage, 1)
	in <- domain.OrderDispatchedMessage{OrderID: 7}
	close(in)

	out := svc.ConsumeDispatched(context.Background(), in)
	var got []domain.Order
	for order := range out {
		got = append(got, order)
	}

	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusDispatched, got[0].Status)
	assert.Equal(t, domain.StatusDispatched, repo.orders[7].Status)
}

func TestConsumeDispatched_DropsUnknownOrders(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(&fakeCatalog{}, repo, &fakePublisher{})

	in := make(chan domain.OrderDispatchedMessage, 1)
	in <- domain.OrderDispatchedMessage{OrderID: 404}
	close(in)

	out := svc.ConsumeDispatched(context.Background(), in)
	var got []domain.Order
	for order := range out {
		got = append(got, order)
	}

	assert.Empty(t, got)
	assert.Zero(t, repo.saves)
}

func TestConsumeDispatched_PreservesOrderOfLookups(t *testing.T) {
	repo := newFakeRepo()
	repo.orders[1] = domain.Order{ID: 1, Status: domain.StatusAccepted}
	repo.orders[2] = domain.Order{ID: 2, Status: domain.StatusAccepted}
	svc := NewService(&fakeCatalog{}, repo, &fakePublisher{})

	in := make(chan domain.OrderDispatchedMessage, 3)
	in <- domain.OrderDispatchedMessage{OrderID: 2}
	in <- domain.OrderDispatchedMessage{OrderID: 404}
	in <- domain.OrderDispatchedMessage{OrderID: 1}
	close(in)

	var ids []int64
	for order := range svc.ConsumeDispatched(context.Background(), in) {
		ids = append(ids, order.ID)
	}
	assert.Equal(t, []int64{2, 1}, ids)
}
