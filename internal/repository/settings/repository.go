package settings

import (
	"context"

	"cafe-storefront/internal/domain"
)

type Repository interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Update(ctx context.Context, s domain.StoreSettings) (*domain.StoreSettings, error)
}
