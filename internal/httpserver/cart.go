package httpserver

import (
	"net/http"

	"cafe-storefront/internal/domain"
	cartsvc "cafe-storefront/internal/service/cart"
	catalogsvc "cafe-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func cartPayload(items []domain.CartItem, totals domain.CartTotals) gin.H {
	if items == nil {
		items = []domain.CartItem{}
	}
	return gin.H{
		"items":      items,
		"totalItems": totals.TotalItems,
		"totalPrice": totals.TotalPrice,
	}
}

func getCartHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner := claimsFrom(c).UserID
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, cartPayload(cart.Items(ctx, owner), cart.Totals(ctx, owner)))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
}

func addCartItemHandler(cart *cartsvc.Service, catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
			return
		}

		ctx := c.Request.Context()
		product, err := catalog.Get(ctx, req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}

		owner := claimsFrom(c).UserID
		cart.Add(ctx, owner, *product)
		c.JSON(http.StatusOK, cartPayload(cart.Items(ctx, owner), cart.Totals(ctx, owner)))
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		ctx := c.Request.Context()
		owner := claimsFrom(c).UserID
		cart.SetQuantity(ctx, owner, c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, cartPayload(cart.Items(ctx, owner), cart.Totals(ctx, owner)))
	}
}

func removeCartItemHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner := claimsFrom(c).UserID
		cart.Remove(ctx, owner, c.Param("id"))
		c.JSON(http.StatusOK, cartPayload(cart.Items(ctx, owner), cart.Totals(ctx, owner)))
	}
}

func clearCartHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		owner := claimsFrom(c).UserID
		cart.Clear(ctx, owner)
		c.JSON(http.StatusOK, cartPayload(nil, domain.CartTotals{}))
	}
}

type checkoutRequest struct {
	DeliveryAddress string `json:"deliveryAddress"`
}

func checkoutHandler(cart *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		owner := claimsFrom(c).UserID
		orderID, err := cart.Checkout(c.Request.Context(), owner, req.DeliveryAddress)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"orderId": orderID})
	}
}
