package handlers

import (
	"net/http"

	"dropflow-go/pkg/metrics"
	"dropflow-go/pkg/models"
	"dropflow-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// ListProducts lists products, filtered by ?q=, ?source= and ?status=
func ListProducts(service *services.CatalogService, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.ProductFilter{
			Query:  c.Query("q"),
			Source: c.Query("source"),
			Status: c.Query("status"),
		}

		products, err := service.ListProducts(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if m != nil {
			m.ProductsListed.Observe(float64(len(products)))
		}

		c.JSON(http.StatusOK, gin.H{"items": products})
	}
}

// CreateProduct creates a new product
func CreateProduct(service *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var create models.ProductCreate
		if err := c.ShouldBindJSON(&create); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := service.CreateProduct(c.Request.Context(), create)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// ListOrders lists orders matching ?q= along with status counters
func ListOrders(service *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, stats, err := service.ListOrders(c.Request.Context(), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": orders, "stats": stats})
	}
}
