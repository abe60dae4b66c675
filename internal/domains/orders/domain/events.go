package domain

// Stream names for the order event channels.
const (
	OrderAcceptedStream   = "order-accepted"
	OrderDispatchedStream = "order-dispatched"
)

// OrderAcceptedMessage notifies downstream services that an order was
// accepted and awaits fulfilment.
type OrderAcceptedMessage struct {
	OrderID int64 `json:"orderId"`
}

// OrderDispatchedMessage signals that a previously accepted order has been
// physically shipped.
type OrderDispatchedMessage struct {
	OrderID int64 `json:"orderId"`
}
