package delivery

import (
	"context"

	"cafe-storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context, onlyAvailable bool) ([]domain.DeliveryPerson, error)
	GetByID(ctx context.Context, id string) (*domain.DeliveryPerson, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}
