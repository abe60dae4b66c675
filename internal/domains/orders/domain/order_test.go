package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAcceptedOrder(t *testing.T) {
	book := Book{
		ISBN:   "1234567890",
		Title:  "Book A",
		Author: "Jane",
		Price:  decimal.RequireFromString("9.99"),
	}

	order := BuildAcceptedOrder(book, 3)

	assert.Equal(t, StatusAccepted, order.Status)
	assert.Equal(t, "1234567890", order.BookISBN)
	require.NotNil(t, order.BookName)
	assert.Equal(t, "Book A - Jane", *order.BookName)
	require.NotNil(t, order.BookPrice)
	assert.True(t, order.BookPrice.Equal(book.Price))
	assert.Equal(t, 3, order.Quantity)
}

func TestBuildRejectedOrder(t *testing.T) {
	order := BuildRejectedOrder("0000000000", 1)

	assert.Equal(t, StatusRejected, order.Status)
	assert.Equal(t, "0000000000", order.BookISBN)
	assert.Nil(t, order.BookName)
	assert.Nil(t, order.BookPrice)
	assert.Equal(t, 1, order.Quantity)
}

func TestDispatched_OnlyStatusChanges(t *testing.T) {
	book := Book{ISBN: "1234567890", Title: "Book A", Author: "Jane", Price: decimal.RequireFromString("9.99")}
	accepted := BuildAcceptedOrder(book, 2)
	accepted.ID = 42
	accepted.Version = 3

	dispatched := accepted.Dispatched()

	assert.Equal(t, StatusDispatched, dispatched.Status)
	assert.Equal(t, accepted.ID, dispatched.ID)
	assert.Equal(t, accepted.BookISBN, dispatched.BookISBN)
	assert.Equal(t, accepted.BookName, dispatched.BookName)
	assert.Equal(t, accepted.BookPrice, dispatched.BookPrice)
	assert.Equal(t, accepted.Quantity, dispatched.Quantity)
	assert.Equal(t, accepted.Version, dispatched.Version)
}

func TestDispatched_Idempotent(t *testing.T) {
	order := BuildAcceptedOrder(Book{ISBN: "1", Title: "T", Author: "A"}, 1)
	once := order.Dispatched()
	twice := once.Dispatched()
	assert.Equal(t, once, twice)
}
