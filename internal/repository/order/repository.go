package order

import (
	"context"

	"cafe-storefront/internal/domain"
)

type CreateOrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     int64
}

type CreateOrderInput struct {
	UserID          string
	DeliveryAddress string
	TotalAmount     int64
	Items           []CreateOrderItem
}

type ListFilter struct {
	Status string
}

type Repository interface {
	// Create inserts the order, its item list and decrements stock per item
	// in a single transaction. Insufficient stock aborts with
	// domain.ErrOutOfStock and leaves no partial order behind.
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	AssignDelivery(ctx context.Context, id, deliveryPersonID string, status domain.OrderStatus) error
}
