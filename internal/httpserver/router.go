package httpserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")

	router.Use(
		requestIDMiddleware(),
		requestLogMiddleware(logger),
		gin.Recovery(),
		cors.New(corsCfg),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(rateLimitMiddleware())
	authGroup.POST("/request-otp", requestOTPHandler(deps.Auth))
	authGroup.POST("/verify-otp", verifyOTPHandler(deps.Auth))
	authGroup.POST("/admin-login", adminLoginHandler(deps.Auth))

	api.GET("/products", listProductsHandler(deps.Catalog))
	api.GET("/products/:id", getProductHandler(deps.Catalog))

	authed := api.Group("")
	authed.Use(authMiddleware(deps.Auth), requireAuth())
	{
		authed.GET("/cart", getCartHandler(deps.Cart))
		authed.POST("/cart/items", addCartItemHandler(deps.Cart, deps.Catalog))
		authed.PATCH("/cart/items/:id", updateCartItemHandler(deps.Cart))
		authed.DELETE("/cart/items/:id", removeCartItemHandler(deps.Cart))
		authed.DELETE("/cart", clearCartHandler(deps.Cart))
		authed.POST("/cart/checkout", checkoutHandler(deps.Cart))

		authed.GET("/orders", listOrdersHandler(deps.Orders))
		authed.GET("/orders/:id", getOrderHandler(deps.Orders))
		authed.GET("/orders/:id/tracking", orderTrackingHandler(deps.Orders))
	}

	admin := api.Group("/admin")
	admin.Use(authMiddleware(deps.Auth), requireAdmin())
	{
		admin.GET("/products", listProductsHandler(deps.Catalog))
		admin.POST("/products", createProductHandler(deps.Catalog))
		admin.PUT("/products/:id", updateProductHandler(deps.Catalog))
		admin.DELETE("/products/:id", deleteProductHandler(deps.Catalog))

		admin.GET("/orders", adminListOrdersHandler(deps.Orders))
		admin.PATCH("/orders/:id/status", updateOrderStatusHandler(deps.Orders))
		admin.POST("/orders/:id/delivery", assignDeliveryHandler(deps.Orders))

		admin.GET("/customers", listCustomersHandler(deps.Users))
		admin.GET("/delivery-persons", listDeliveryPersonsHandler(deps.Delivery))

		admin.GET("/settings", getSettingsHandler(deps.Settings))
		admin.PUT("/settings", updateSettingsHandler(deps.Settings))
	}

	return router
}
