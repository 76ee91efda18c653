package order

import (
	"context"
	"testing"

	"cafe-storefront/internal/domain"
	orderrepo "cafe-storefront/internal/repository/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	orders map[string]*domain.Order

	createdInput *orderrepo.CreateOrderInput
	createErr    error

	statusUpdates   []domain.OrderStatus
	assignedCourier string
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	m := make(map[string]*domain.Order)
	for _, o := range orders {
		m[o.ID] = o
	}
	return &stubOrderRepo{orders: m}
}

func (s *stubOrderRepo) Create(_ context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error) {
	s.createdInput = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Order{ID: "new-order", UserID: in.UserID, Status: domain.StatusPending, TotalAmount: in.TotalAmount}, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) List(_ context.Context, _ orderrepo.ListFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

func (s *stubOrderRepo) AssignDelivery(_ context.Context, id, deliveryPersonID string, status domain.OrderStatus) error {
	o, ok := s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.DeliveryPersonID = &deliveryPersonID
	s.assignedCourier = deliveryPersonID
	return nil
}

type stubDeliveryRepo struct {
	couriers map[string]*domain.DeliveryPerson
	markedID string
}

func (s *stubDeliveryRepo) GetByID(_ context.Context, id string) (*domain.DeliveryPerson, error) {
	d, ok := s.couriers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (s *stubDeliveryRepo) SetAvailability(_ context.Context, id string, available bool) error {
	s.markedID = id
	if d, ok := s.couriers[id]; ok {
		d.IsAvailable = available
	}
	return nil
}

func newTestService(repo *stubOrderRepo, delivery *stubDeliveryRepo) *Service {
	if delivery == nil {
		delivery = &stubDeliveryRepo{couriers: map[string]*domain.DeliveryPerson{}}
	}
	return &Service{repo: repo, delivery: delivery}
}

func TestService_PlaceBuildsTransactionalInput(t *testing.T) {
	repo := newStubOrderRepo()
	svc := newTestService(repo, nil)

	items := []domain.CartItem{
		{ID: "p1", Name: "Cake", UnitPrice: 599, Quantity: 2},
		{ID: "p2", Name: "Chai", UnitPrice: 149, Quantity: 1},
	}
	order, err := svc.Place(context.Background(), "u1", "12 Sweet Lane", items, 1347)
	require.NoError(t, err)
	assert.Equal(t, "new-order", order.ID)

	require.NotNil(t, repo.createdInput)
	assert.Equal(t, "u1", repo.createdInput.UserID)
	assert.Equal(t, int64(1347), repo.createdInput.TotalAmount)
	require.Len(t, repo.createdInput.Items, 2)
	assert.Equal(t, 2, repo.createdInput.Items[0].Quantity)
	assert.Equal(t, int64(599), repo.createdInput.Items[0].Price)
}

func TestService_PlaceRejectsEmptyItems(t *testing.T) {
	svc := newTestService(newStubOrderRepo(), nil)
	_, err := svc.Place(context.Background(), "u1", "addr", nil, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_GetForUserOwnership(t *testing.T) {
	repo := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending})
	svc := newTestService(repo, nil)
	ctx := context.Background()

	order, err := svc.GetForUser(ctx, "u1", "o1", false)
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)

	_, err = svc.GetForUser(ctx, "u2", "o1", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetForUser(ctx, "u2", "o1", true)
	assert.NoError(t, err)
}

func TestService_UpdateStatusValidatesTransition(t *testing.T) {
	repo := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending})
	svc := newTestService(repo, nil)
	ctx := context.Background()

	order, err := svc.UpdateStatus(ctx, "o1", domain.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, order.Status)

	_, err = svc.UpdateStatus(ctx, "o1", domain.StatusDelivered)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, []domain.OrderStatus{domain.StatusProcessing}, repo.statusUpdates)
}

func TestService_AssignDeliveryAdvancesStatus(t *testing.T) {
	repo := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusProcessing})
	delivery := &stubDeliveryRepo{couriers: map[string]*domain.DeliveryPerson{
		"d1": {ID: "d1", Name: "Ravi", IsAvailable: true},
	}}
	svc := newTestService(repo, delivery)

	order, err := svc.AssignDelivery(context.Background(), "o1", "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutForDelivery, order.Status)
	require.NotNil(t, order.DeliveryPersonID)
	assert.Equal(t, "d1", *order.DeliveryPersonID)
	assert.Equal(t, "d1", delivery.markedID)
	assert.False(t, delivery.couriers["d1"].IsAvailable)
}

func TestService_AssignDeliveryRejectsEarlyStatus(t *testing.T) {
	repo := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPending})
	delivery := &stubDeliveryRepo{couriers: map[string]*domain.DeliveryPerson{
		"d1": {ID: "d1", IsAvailable: true},
	}}
	svc := newTestService(repo, delivery)

	_, err := svc.AssignDelivery(context.Background(), "o1", "d1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, repo.assignedCourier)
}

func TestService_AssignDeliveryRejectsUnavailableCourier(t *testing.T) {
	repo := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusProcessing})
	delivery := &stubDeliveryRepo{couriers: map[string]*domain.DeliveryPerson{
		"d1": {ID: "d1", Name: "Ravi", IsAvailable: false},
	}}
	svc := newTestService(repo, delivery)

	_, err := svc.AssignDelivery(context.Background(), "o1", "d1")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_TrackingForUser(t *testing.T) {
	repo := newStubOrderRepo(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusPreparing})
	svc := newTestService(repo, nil)

	tr, err := svc.TrackingForUser(context.Background(), "u1", "o1", false)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.CurrentStep)
	assert.InDelta(t, 0.75, tr.Progress, 1e-9)

	_, err = svc.TrackingForUser(context.Background(), "other", "o1", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
