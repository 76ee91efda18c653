package settings

import (
	"context"
	"fmt"

	"cafe-storefront/internal/domain"
	settingsrepo "cafe-storefront/internal/repository/settings"
)

type Service struct {
	repo settingsrepo.Repository
}

func New(repo settingsrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*domain.StoreSettings, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, in domain.StoreSettings) (*domain.StoreSettings, error) {
	if in.DeliveryFee < 0 || in.MinimumOrder < 0 {
		return nil, fmt.Errorf("%w: fees must not be negative", domain.ErrValidation)
	}
	if in.TaxRatePct < 0 || in.TaxRatePct > 100 {
		return nil, fmt.Errorf("%w: tax rate out of range", domain.ErrValidation)
	}
	return s.repo.Update(ctx, in)
}
