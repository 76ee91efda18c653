package httpserver

import (
	"net/http"

	"cafe-storefront/internal/domain"
	ordersvc "cafe-storefront/internal/service/order"
	"github.com/gin-gonic/gin"
)

func listOrdersHandler(orders *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.ListForUser(c.Request.Context(), claimsFrom(c).UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		if result == nil {
			result = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": result})
	}
}

func getOrderHandler(orders *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		order, err := orders.GetForUser(c.Request.Context(), claims.UserID, c.Param("id"), claims.IsAdmin)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func orderTrackingHandler(orders *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFrom(c)
		tracking, err := orders.TrackingForUser(c.Request.Context(), claims.UserID, c.Param("id"), claims.IsAdmin)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tracking)
	}
}
