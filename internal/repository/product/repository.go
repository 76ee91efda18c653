package product

import (
	"context"

	"cafe-storefront/internal/domain"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Stock       int
	Rating      float64
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Stock       int
	Rating      float64
}

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
