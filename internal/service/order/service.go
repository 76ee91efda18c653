package order

import (
	"context"
	"fmt"

	"cafe-storefront/internal/domain"
	"cafe-storefront/internal/logger"
	orderrepo "cafe-storefront/internal/repository/order"
	"go.uber.org/zap"
)

type orderRepo interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, filter orderrepo.ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	AssignDelivery(ctx context.Context, id, deliveryPersonID string, status domain.OrderStatus) error
}

type deliveryRepo interface {
	GetByID(ctx context.Context, id string) (*domain.DeliveryPerson, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type Service struct {
	repo     orderRepo
	delivery deliveryRepo
}

func New(repo orderrepo.Repository, delivery deliveryRepo) *Service {
	return &Service{repo: repo, delivery: delivery}
}

// Place creates the order with its item list and stock decrements in one
// backend transaction. Used by cart checkout.
func (s *Service) Place(ctx context.Context, userID, deliveryAddress string, items []domain.CartItem, total int64) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", domain.ErrValidation)
	}

	in := orderrepo.CreateOrderInput{
		UserID:          userID,
		DeliveryAddress: deliveryAddress,
		TotalAmount:     total,
	}
	for _, item := range items {
		in.Items = append(in.Items, orderrepo.CreateOrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
		})
	}

	order, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	logger.FromCtx(ctx).Info("order placed", zap.String("order_id", order.ID), zap.String("user_id", userID))
	return order, nil
}

// GetForUser returns the order if it belongs to the user; admins see all.
func (s *Service) GetForUser(ctx context.Context, userID, orderID string, isAdmin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, status string) ([]domain.Order, error) {
	return s.repo.List(ctx, orderrepo.ListFilter{Status: status})
}

// UpdateStatus advances the order through the status machine; disallowed
// moves fail with ErrInvalidTransition.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := Transition(order.Status, to); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, orderID, to); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)),
	)
	order.Status = to
	return order, nil
}

// AssignDelivery attaches a courier and auto-advances processing to
// out_for_delivery.
func (s *Service) AssignDelivery(ctx context.Context, orderID, deliveryPersonID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := Transition(order.Status, domain.StatusOutForDelivery); err != nil {
		return nil, err
	}

	courier, err := s.delivery.GetByID(ctx, deliveryPersonID)
	if err != nil {
		return nil, err
	}
	if !courier.IsAvailable {
		return nil, fmt.Errorf("%w: delivery person %s is not available", domain.ErrValidation, courier.Name)
	}

	if err := s.repo.AssignDelivery(ctx, orderID, deliveryPersonID, domain.StatusOutForDelivery); err != nil {
		return nil, err
	}
	if err := s.delivery.SetAvailability(ctx, deliveryPersonID, false); err != nil {
		logger.FromCtx(ctx).Warn("mark delivery person busy failed", zap.String("delivery_person_id", deliveryPersonID), zap.Error(err))
	}

	logger.FromCtx(ctx).Info("delivery assigned",
		zap.String("order_id", orderID),
		zap.String("delivery_person_id", deliveryPersonID),
	)
	order.Status = domain.StatusOutForDelivery
	order.DeliveryPersonID = &deliveryPersonID
	return order, nil
}

// TrackingForUser computes the tracking ladder for an order the user owns.
func (s *Service) TrackingForUser(ctx context.Context, userID, orderID string, isAdmin bool) (*Tracking, error) {
	order, err := s.GetForUser(ctx, userID, orderID, isAdmin)
	if err != nil {
		return nil, err
	}
	t := BuildTracking(order)
	return &t, nil
}
