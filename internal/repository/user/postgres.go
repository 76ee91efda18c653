package user

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

const userColumns = `id::text, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(name, ''), COALESCE(username, ''), COALESCE(password_hash, ''), is_admin, created_at`

func (r *postgresRepo) UpsertByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const q = `
INSERT INTO users (phone)
VALUES ($1)
ON CONFLICT (phone) DO UPDATE SET phone = EXCLUDED.phone
RETURNING ` + userColumns + `
`
	var u domain.User
	if err := r.pool.QueryRow(ctx, q, phone).Scan(&u.ID, &u.Phone, &u.Email, &u.Name, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
		r.logger.Error("user repo: upsert by phone", zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("user repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Phone, &u.Email, &u.Name, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, arg interface{}) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Phone, &u.Email, &u.Name, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
