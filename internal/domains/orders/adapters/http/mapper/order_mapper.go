package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartinix/order-service/internal/domains/orders/domain"
)

// OrderRequest is the submit-order payload. Quantity must be positive;
// anything beyond positivity (stock levels etc.) is not checked here.
type OrderRequest struct {
	ISBN     string `json:"isbn" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// Order is the transport-layer representation of a persisted order.
type Order struct {
	ID               int64            `json:"id"`
	BookISBN         string           `json:"bookIsbn"`
	BookName         *string          `json:"bookName"`
	BookPrice        *decimal.Decimal `json:"bookPrice"`
	Quantity         int              `json:"quantity"`
	Status           string           `json:"status"`
	CreatedDate      time.Time        `json:"createdDate"`
	LastModifiedDate time.Time        `json:"lastModifiedDate"`
	CreatedBy        string           `json:"createdBy"`
	LastModifiedBy   string           `json:"lastModifiedBy"`
	Version          int64            `json:"version"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order domain.Order) Order {
	return Order{
		ID:               order.ID,
		BookISBN:         order.BookISBN,
		BookName:         order.BookName,
		BookPrice:        order.BookPrice,
		Quantity:         order.Quantity,
		Status:           string(order.Status),
		CreatedDate:      order.CreatedDate,
		LastModifiedDate: order.LastModifiedDate,
		CreatedBy:        order.CreatedBy,
		LastModifiedBy:   order.LastModifiedBy,
		Version:          order.Version,
	}
}

// FromDomainOrders converts a list of domain orders.
func FromDomainOrders(orders []domain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
