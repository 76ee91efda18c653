package httpserver

import (
	"net/http"

	"cafe-storefront/internal/domain"
	productrepo "cafe-storefront/internal/repository/product"
	catalogsvc "cafe-storefront/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
}

func createProductHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		product, err := catalog.Create(c.Request.Context(), productrepo.CreateProductInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Category:    req.Category,
			Stock:       req.Stock,
			Rating:      req.Rating,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func updateProductHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		product, err := catalog.Update(c.Request.Context(), c.Param("id"), productrepo.UpdateProductInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Category:    req.Category,
			Stock:       req.Stock,
			Rating:      req.Rating,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func deleteProductHandler(catalog *catalogsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
