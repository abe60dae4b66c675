// Package server hosts the HTTP transport for the order service.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/smartinix/order-service/internal/domains/orders/adapters/http/mapper"
	"github.com/smartinix/order-service/internal/domains/orders/ports"
	"github.com/smartinix/order-service/internal/platform/auth"
)

// OrderAPI wires HTTP transport with the orders bounded context service.
type OrderAPI struct {
	service ports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /orders
// Submit a purchase order for a book
func (api *OrderAPI) SubmitOrder(c *gin.Context) {
	var payload ordermapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidationError(c, err)
		return
	}
	saved, err := api.service.SubmitOrder(c.Request.Context(), payload.ISBN, payload.Quantity)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(saved))
}

// Get /orders
// List the orders created by the authenticated user
func (api *OrderAPI) GetOrders(c *gin.Context) {
	subject := auth.SubjectFromContext(c.Request.Context())
	orders, err := api.service.GetAllOrders(c.Request.Context(), subject)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}
