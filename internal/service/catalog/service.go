package catalog

import (
	"context"
	"fmt"
	"strings"

	"cafe-storefront/internal/domain"
	productrepo "cafe-storefront/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in productrepo.CreateProductInput) (*domain.Product, error) {
	if err := validate(in.Name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id string, in productrepo.UpdateProductInput) (*domain.Product, error) {
	if err := validate(in.Name, in.Price, in.Stock); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(name string, price int64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", domain.ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	return nil
}
