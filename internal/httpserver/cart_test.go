package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-storefront/internal/domain"
	productrepo "cafe-storefront/internal/repository/product"
	authsvc "cafe-storefront/internal/service/auth"
	cartsvc "cafe-storefront/internal/service/cart"
	catalogsvc "cafe-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedProducts struct {
	products map[string]domain.Product
}

func (s *fixedProducts) List(context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *fixedProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *fixedProducts) Create(context.Context, productrepo.CreateProductInput) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *fixedProducts) Update(context.Context, string, productrepo.UpdateProductInput) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *fixedProducts) Delete(context.Context, string) error { return nil }

type recordingPlacer struct {
	err   error
	order *domain.Order
	calls int
}

func (p *recordingPlacer) Place(_ context.Context, _, _ string, _ []domain.CartItem, _ int64) (*domain.Order, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.order, nil
}

// asUser injects claims the way authMiddleware would after a valid token.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(claimsCtxKey, &authsvc.Claims{UserID: userID})
		c.Next()
	}
}

func newCartRouter(cart *cartsvc.Service, catalog *catalogsvc.Service, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api", asUser(userID), requireAuth())
	g.GET("/cart", getCartHandler(cart))
	g.POST("/cart/items", addCartItemHandler(cart, catalog))
	g.PATCH("/cart/items/:id", updateCartItemHandler(cart))
	g.DELETE("/cart/items/:id", removeCartItemHandler(cart))
	g.DELETE("/cart", clearCartHandler(cart))
	g.POST("/cart/checkout", checkoutHandler(cart))
	return r
}

func newCartFixture(t *testing.T, placer *recordingPlacer) (*gin.Engine, *cartsvc.Service) {
	t.Helper()
	catalog := catalogsvc.New(&fixedProducts{products: map[string]domain.Product{
		"p1": {ID: "p1", Name: "Cappuccino", Price: 249, Stock: 10},
		"p2": {ID: "p2", Name: "Red Velvet Cake", Price: 599, Stock: 3},
	}})
	cart := cartsvc.New(cartsvc.NewMemoryStorage(), placer, zap.NewNop())
	return newCartRouter(cart, catalog, "u-1"), cart
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody []byte
	if payload != nil {
		var err error
		reqBody, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCartHandlers_AddAndGet(t *testing.T) {
	r, _ := newCartFixture(t, &recordingPlacer{})

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["totalItems"])
	assert.EqualValues(t, 498, body["totalPrice"])

	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 498, decodeBody(t, w)["totalPrice"])
}

func TestCartHandlers_AddUnknownProduct(t *testing.T) {
	r, _ := newCartFixture(t, &recordingPlacer{})

	w := doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandlers_UpdateAndRemove(t *testing.T) {
	r, _ := newCartFixture(t, &recordingPlacer{})

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"})
	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p2"})

	w := doJSON(t, r, http.MethodPatch, "/api/cart/items/p1", gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, decodeBody(t, w)["totalItems"])

	w = doJSON(t, r, http.MethodPatch, "/api/cart/items/p2", gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decodeBody(t, w)["totalItems"])

	w = doJSON(t, r, http.MethodDelete, "/api/cart/items/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["totalItems"])
}

func TestCartHandlers_Clear(t *testing.T) {
	r, _ := newCartFixture(t, &recordingPlacer{})

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"})
	w := doJSON(t, r, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["totalItems"])
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Empty(t, items)
}

func TestCheckoutHandler(t *testing.T) {
	placer := &recordingPlacer{order: &domain.Order{ID: "order-9"}}
	r, cart := newCartFixture(t, placer)

	// Empty cart checkout is rejected before the backend is touched.
	w := doJSON(t, r, http.MethodPost, "/api/cart/checkout", gin.H{"deliveryAddress": "12 Sweet Lane"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, placer.calls)

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"})

	w = doJSON(t, r, http.MethodPost, "/api/cart/checkout", gin.H{"deliveryAddress": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart/checkout", gin.H{"deliveryAddress": "12 Sweet Lane"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "order-9", decodeBody(t, w)["orderId"])
	assert.Empty(t, cart.Items(context.Background(), "u-1"))
}

func TestCheckoutHandler_OutOfStock(t *testing.T) {
	placer := &recordingPlacer{err: domain.ErrOutOfStock}
	r, _ := newCartFixture(t, placer)

	doJSON(t, r, http.MethodPost, "/api/cart/items", gin.H{"productId": "p2"})
	w := doJSON(t, r, http.MethodPost, "/api/cart/checkout", gin.H{"deliveryAddress": "12 Sweet Lane"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
