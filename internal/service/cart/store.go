package cart

import (
	"context"
	"errors"
	"sync"

	"cafe-storefront/internal/domain"
	"go.uber.org/zap"
)

// Store holds the live cart for one owner and mirrors every mutation to
// durable storage. Storage failures are logged, not surfaced; a corrupt
// snapshot loads as an empty cart.
type Store struct {
	mu      sync.Mutex
	owner   string
	items   []domain.CartItem
	storage Storage
	logger  *zap.Logger
}

func newStore(ctx context.Context, owner string, storage Storage, logger *zap.Logger) *Store {
	s := &Store{owner: owner, storage: storage, logger: logger}

	data, err := storage.Load(ctx, owner)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// first visit, nothing saved yet
	case err != nil:
		logger.Warn("cart snapshot load failed", zap.String("owner", owner), zap.Error(err))
	default:
		items, err := decodeSnapshot(data)
		if err != nil {
			logger.Warn("discarding corrupt cart snapshot", zap.String("owner", owner), zap.Error(err))
		} else {
			s.items = items
		}
	}
	return s
}

// Add appends the product with quantity 1, or increments the existing line.
func (s *Store) Add(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, domain.CartItem{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})
	s.persist(ctx)
}

// Remove deletes the matching line; absent lines are a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, id)
}

// SetQuantity sets the line quantity; zero or less removes the line.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, id)
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and drops the durable snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.storage.Delete(ctx, s.owner); err != nil {
		s.logger.Warn("cart snapshot delete failed", zap.String("owner", s.owner), zap.Error(err))
	}
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Totals recomputes the derived sums from the live item list on every call.
func (s *Store) Totals() domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t domain.CartTotals
	for _, item := range s.items {
		t.TotalItems += item.Quantity
		t.TotalPrice += item.UnitPrice * int64(item.Quantity)
	}
	return t
}

func (s *Store) removeLocked(ctx context.Context, id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

func (s *Store) persist(ctx context.Context) {
	data, err := encodeSnapshot(s.items)
	if err != nil {
		s.logger.Warn("cart snapshot encode failed", zap.String("owner", s.owner), zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, s.owner, data); err != nil {
		s.logger.Warn("cart snapshot save failed", zap.String("owner", s.owner), zap.Error(err))
	}
}
