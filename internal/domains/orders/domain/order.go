package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusDispatched Status = "dispatched"
)

// Book is the catalog view of a purchasable title.
type Book struct {
	ISBN   string
	Title  string
	Author string
	Price  decimal.Decimal
}

// Order models a purchase order for a single book. BookName and BookPrice
// are nil exactly when the order was rejected because the catalog had no
// entry for the requested ISBN. ID, audit fields, and Version are assigned
// by the repository on save.
type Order struct {
	ID               int64
	BookISBN         string
	BookName         *string
	BookPrice        *decimal.Decimal
	Quantity         int
	Status           Status
	CreatedDate      time.Time
	LastModifiedDate time.Time
	CreatedBy        string
	LastModifiedBy   string
	Version          int64
}

// BuildAcceptedOrder constructs an accepted order from a catalog hit. The
// book name is composed as "<title> - <author>".
func BuildAcceptedOrder(book Book, quantity int) Order {
	name := fmt.Sprintf("%s - %s", book.Title, book.Author)
	price := book.Price
	return Order{
		BookISBN:  book.ISBN,
		BookName:  &name,
		BookPrice: &price,
		Quantity:  quantity,
		Status:    StatusAccepted,
	}
}

// BuildRejectedOrder constructs a rejected order for an ISBN the catalog
// does not know.
func BuildRejectedOrder(isbn string, quantity int) Order {
	return Order{
		BookISBN: isbn,
		Quantity: quantity,
		Status:   StatusRejected,
	}
}

// Dispatched returns a copy of the order with status dispatched. Everything
// else, including Version and the audit fields, is left for the repository
// to maintain on save.
func (o Order) Dispatched() Order {
	o.Status = StatusDispatched
	return o
}
