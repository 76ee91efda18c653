package httpserver

import (
	"errors"
	"net/http"

	"cafe-storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinels to HTTP statuses with a {message} body.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, domain.ErrExpired), errors.Is(err, domain.ErrMismatch):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrOutOfStock):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, gin.H{"message": message})
}
