package product

import (
	"context"
	"errors"

	"cafe-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, COALESCE(description, ''), price, COALESCE(image_url, ''), COALESCE(category, ''), stock, rating, created_at, updated_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.Rating, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, image_url, category, stock, rating)
VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
RETURNING ` + productColumns + `
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, in.Name, in.Description, in.Price, in.ImageURL, in.Category, in.Stock, in.Rating).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error("product repo: create", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product repo: created", zap.String("id", p.ID), zap.String("name", p.Name))
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    price = $4,
    image_url = NULLIF($5, ''),
    category = NULLIF($6, ''),
    stock = $7,
    rating = $8,
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns + `
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id, in.Name, in.Description, in.Price, in.ImageURL, in.Category, in.Stock, in.Rating).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.Category, &p.Stock, &p.Rating, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: update", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("product repo: delete", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
