package order

import (
	"context"
	"errors"

	"cafe-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const orderColumns = `id::text, user_id::text, status, total_amount, delivery_address, delivery_person_id::text, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (user_id, status, total_amount, delivery_address)
VALUES ($1, $2, $3, $4)
RETURNING ` + orderColumns + `
`
	var o domain.Order
	var deliveryPersonID *string
	if err := tx.QueryRow(ctx, orderQ, in.UserID, domain.StatusPending, in.TotalAmount, in.DeliveryAddress).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalAmount,
		&o.DeliveryAddress,
		&deliveryPersonID,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		r.logger.Error("order repo: insert order", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}
	o.DeliveryPersonID = deliveryPersonID

	for _, item := range in.Items {
		var itemID string
		if err := tx.QueryRow(ctx, `
INSERT INTO order_items (order_id, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
RETURNING id::text
`, o.ID, item.ProductID, item.Quantity, item.Price).Scan(&itemID); err != nil {
			r.logger.Error("order repo: insert item", zap.String("order_id", o.ID), zap.String("product_id", item.ProductID), zap.Error(err))
			return nil, err
		}

		if _, err := tx.Exec(ctx, `SELECT decrement_product_stock($1, $2)`, item.ProductID, item.Quantity); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23514" {
				return nil, domain.ErrOutOfStock
			}
			r.logger.Error("order repo: decrement stock", zap.String("product_id", item.ProductID), zap.Error(err))
			return nil, err
		}

		o.Items = append(o.Items, domain.OrderItem{
			ID:        itemID,
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.Info("order repo: created", zap.String("id", o.ID), zap.String("user_id", o.UserID), zap.Int64("total", o.TotalAmount))
	return &o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	var o domain.Order
	var deliveryPersonID *string
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalAmount,
		&o.DeliveryAddress,
		&deliveryPersonID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("order repo: get", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	o.DeliveryPersonID = deliveryPersonID

	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.fetchOrders(ctx, q, userID)
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	if filter.Status != "" {
		const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE status = $1
ORDER BY created_at DESC
`
		return r.fetchOrders(ctx, q, filter.Status)
	}
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	return r.fetchOrders(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $2, updated_at = now()
WHERE id = $1
`, id, status)
	if err != nil {
		r.logger.Error("order repo: update status", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AssignDelivery(ctx context.Context, id, deliveryPersonID string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET delivery_person_id = $2, status = $3, updated_at = now()
WHERE id = $1
`, id, deliveryPersonID, status)
	if err != nil {
		r.logger.Error("order repo: assign delivery", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchOrders(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("order repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		var deliveryPersonID *string
		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.TotalAmount,
			&o.DeliveryAddress,
			&deliveryPersonID,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		o.DeliveryPersonID = deliveryPersonID
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.product_id::text, COALESCE(p.name, ''), oi.quantity, oi.price
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.id
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
