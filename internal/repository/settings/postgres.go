package settings

import (
	"context"

	"cafe-storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const settingsColumns = `store_name, store_email, store_phone, store_address, delivery_fee, minimum_order, tax_rate_pct, updated_at`

func (r *postgresRepo) Get(ctx context.Context) (*domain.StoreSettings, error) {
	const q = `
SELECT ` + settingsColumns + `
FROM store_settings
WHERE id = 1
`
	var s domain.StoreSettings
	if err := r.pool.QueryRow(ctx, q).Scan(&s.StoreName, &s.StoreEmail, &s.StorePhone, &s.StoreAddress, &s.DeliveryFee, &s.MinimumOrder, &s.TaxRatePct, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Update(ctx context.Context, in domain.StoreSettings) (*domain.StoreSettings, error) {
	const q = `
UPDATE store_settings
SET store_name = $1,
    store_email = $2,
    store_phone = $3,
    store_address = $4,
    delivery_fee = $5,
    minimum_order = $6,
    tax_rate_pct = $7,
    updated_at = now()
WHERE id = 1
RETURNING ` + settingsColumns + `
`
	var s domain.StoreSettings
	if err := r.pool.QueryRow(ctx, q, in.StoreName, in.StoreEmail, in.StorePhone, in.StoreAddress, in.DeliveryFee, in.MinimumOrder, in.TaxRatePct).
		Scan(&s.StoreName, &s.StoreEmail, &s.StorePhone, &s.StoreAddress, &s.DeliveryFee, &s.MinimumOrder, &s.TaxRatePct, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
