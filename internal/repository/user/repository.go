package user

import (
	"context"

	"cafe-storefront/internal/domain"
)

type Repository interface {
	// UpsertByPhone returns the user for the phone number, creating the row
	// on first verification.
	UpsertByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
