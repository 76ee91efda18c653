package domain

import "time"

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusProcessing     OrderStatus = "processing"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID               string      `json:"id"`
	UserID           string      `json:"userId"`
	Status           OrderStatus `json:"status"`
	TotalAmount      int64       `json:"totalAmount"`
	DeliveryAddress  string      `json:"deliveryAddress"`
	DeliveryPersonID *string     `json:"deliveryPersonId,omitempty"`
	Items            []OrderItem `json:"items,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// OrderItem captures the price at order time; the list is immutable after
// checkout.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}
