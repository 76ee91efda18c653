package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cafe-storefront/internal/domain"
	"go.uber.org/zap"
)

// OrderPlacer persists an order from the current cart contents. The whole
// placement is transactional on the backend side; any failure leaves no
// partial order.
type OrderPlacer interface {
	Place(ctx context.Context, userID, deliveryAddress string, items []domain.CartItem, total int64) (*domain.Order, error)
}

// Service owns one Store per cart owner, loading each lazily from storage.
type Service struct {
	mu      sync.Mutex
	stores  map[string]*Store
	storage Storage
	orders  OrderPlacer
	logger  *zap.Logger
}

func New(storage Storage, orders OrderPlacer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stores:  make(map[string]*Store),
		storage: storage,
		orders:  orders,
		logger:  logger,
	}
}

// store returns the owner's cart, reloading the durable snapshot on first use.
func (s *Service) store(ctx context.Context, owner string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stores[owner]; ok {
		return st
	}
	st := newStore(ctx, owner, s.storage, s.logger)
	s.stores[owner] = st
	return st
}

func (s *Service) Add(ctx context.Context, owner string, p domain.Product) {
	s.store(ctx, owner).Add(ctx, p)
}

func (s *Service) Remove(ctx context.Context, owner, productID string) {
	s.store(ctx, owner).Remove(ctx, productID)
}

func (s *Service) SetQuantity(ctx context.Context, owner, productID string, quantity int) {
	s.store(ctx, owner).SetQuantity(ctx, productID, quantity)
}

func (s *Service) Clear(ctx context.Context, owner string) {
	s.store(ctx, owner).Clear(ctx)
}

func (s *Service) Items(ctx context.Context, owner string) []domain.CartItem {
	return s.store(ctx, owner).Items()
}

func (s *Service) Totals(ctx context.Context, owner string) domain.CartTotals {
	return s.store(ctx, owner).Totals()
}

// Checkout places an order from the cart and clears it only after the backend
// confirms. An unauthenticated owner or empty cart fails before any backend
// call.
func (s *Service) Checkout(ctx context.Context, userID, deliveryAddress string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: must be logged in to checkout", domain.ErrValidation)
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return "", fmt.Errorf("%w: delivery address required", domain.ErrValidation)
	}

	st := s.store(ctx, userID)
	items := st.Items()
	if len(items) == 0 {
		return "", fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}
	totals := st.Totals()

	order, err := s.orders.Place(ctx, userID, deliveryAddress, items, totals.TotalPrice)
	if err != nil {
		return "", err
	}

	st.Clear(ctx)
	s.logger.Info("checkout completed",
		zap.String("user_id", userID),
		zap.String("order_id", order.ID),
		zap.Int64("total", totals.TotalPrice),
	)
	return order.ID, nil
}
