package delivery

import (
	"context"
	"errors"

	"cafe-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context, onlyAvailable bool) ([]domain.DeliveryPerson, error) {
	q := `
SELECT id::text, name, phone, is_available, created_at
FROM delivery_persons
ORDER BY name ASC
`
	if onlyAvailable {
		q = `
SELECT id::text, name, phone, is_available, created_at
FROM delivery_persons
WHERE is_available
ORDER BY name ASC
`
	}
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeliveryPerson
	for rows.Next() {
		var d domain.DeliveryPerson
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.IsAvailable, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.DeliveryPerson, error) {
	const q = `
SELECT id::text, name, phone, is_available, created_at
FROM delivery_persons
WHERE id = $1
`
	var d domain.DeliveryPerson
	err := r.pool.QueryRow(ctx, q, id).Scan(&d.ID, &d.Name, &d.Phone, &d.IsAvailable, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE delivery_persons
SET is_available = $2
WHERE id = $1
`, id, available)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
