package httpserver

import (
	"errors"
	"net/http"

	"cafe-storefront/internal/domain"
	authsvc "cafe-storefront/internal/service/auth"
	"github.com/gin-gonic/gin"
)

type requestOTPRequest struct {
	Phone string `json:"phone"`
}

func requestOTPHandler(auth *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requestOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number is required"})
			return
		}

		if err := auth.RequestCode(c.Request.Context(), req.Phone); err != nil {
			if errors.Is(err, domain.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
	}
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

func verifyOTPHandler(auth *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" || req.OTP == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number and OTP are required"})
			return
		}

		token, user, err := auth.VerifyCode(c.Request.Context(), req.Phone, req.OTP)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired or not found"})
			case errors.Is(err, domain.ErrExpired):
				c.JSON(http.StatusBadRequest, gin.H{"message": "OTP expired"})
			case errors.Is(err, domain.ErrMismatch):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
			case errors.Is(err, domain.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Phone number and OTP are required"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify OTP"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "OTP verified successfully",
			"token":   token,
			"user":    user,
		})
	}
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func adminLoginHandler(auth *authsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
			return
		}

		token, user, err := auth.AdminLogin(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
