package httpserver

import (
	"net/http"

	"cafe-storefront/internal/domain"
	deliveryrepo "cafe-storefront/internal/repository/delivery"
	userrepo "cafe-storefront/internal/repository/user"
	ordersvc "cafe-storefront/internal/service/order"
	settingssvc "cafe-storefront/internal/service/settings"
	"github.com/gin-gonic/gin"
)

func adminListOrdersHandler(orders *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := orders.ListAll(c.Request.Context(), c.Query("status"))
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

type updateStatusRequest struct {
	Status string `json:"status"`
}

func updateOrderStatusHandler(orders *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
			return
		}

		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type assignDeliveryRequest struct {
	DeliveryPersonID string `json:"deliveryPersonId"`
}

func assignDeliveryHandler(orders *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignDeliveryRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.DeliveryPersonID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "deliveryPersonId is required"})
			return
		}

		order, err := orders.AssignDelivery(c.Request.Context(), c.Param("id"), req.DeliveryPersonID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func listCustomersHandler(users userrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := users.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if result == nil {
			result = []domain.User{}
		}
		c.JSON(http.StatusOK, gin.H{"customers": result})
	}
}

func listDeliveryPersonsHandler(delivery deliveryrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := delivery.List(c.Request.Context(), c.Query("available") == "true")
		if err != nil {
			respondError(c, err)
			return
		}
		if result == nil {
			result = []domain.DeliveryPerson{}
		}
		c.JSON(http.StatusOK, gin.H{"deliveryPersons": result})
	}
}

func getSettingsHandler(settings *settingssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := settings.Get(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

type settingsRequest struct {
	StoreName    string  `json:"storeName"`
	StoreEmail   string  `json:"storeEmail"`
	StorePhone   string  `json:"storePhone"`
	StoreAddress string  `json:"storeAddress"`
	DeliveryFee  int64   `json:"deliveryFee"`
	MinimumOrder int64   `json:"minimumOrder"`
	TaxRatePct   float64 `json:"taxRatePct"`
}

func updateSettingsHandler(settings *settingssvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req settingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		s, err := settings.Update(c.Request.Context(), domain.StoreSettings{
			StoreName:    req.StoreName,
			StoreEmail:   req.StoreEmail,
			StorePhone:   req.StorePhone,
			StoreAddress: req.StoreAddress,
			DeliveryFee:  req.DeliveryFee,
			MinimumOrder: req.MinimumOrder,
			TaxRatePct:   req.TaxRatePct,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
