package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"store-admin/internal/domain"
	productsvc "store-admin/internal/service/product"
)

// productDetail is a product with its collection references populated.
type productDetail struct {
	domain.Product
	Collections []domain.Collection `json:"collections"`
}

func listProductsHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, collections, err := svc.List(c.Request.Context())
		if err != nil {
			logger.Printf("products handler: list error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		rows := make([]productDetail, 0, len(products))
		for _, p := range products {
			resolved := make([]domain.Collection, 0, len(p.Collections))
			for _, id := range p.Collections {
				if col, ok := collections[id]; ok {
					resolved = append(resolved, col)
				}
			}
			rows = append(rows, productDetail{Product: p, Collections: resolved})
		}
		c.JSON(http.StatusOK, rows)
	}
}

func getProductHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("productId")
		p, collections, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			logger.Printf("products handler: get id=%s error=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if collections == nil {
			collections = []domain.Collection{}
		}
		c.JSON(http.StatusOK, productDetail{Product: *p, Collections: collections})
	}
}

func createProductHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, productsvc.ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Printf("products handler: create error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func updateProductHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("productId")
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			case errors.Is(err, productsvc.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Printf("products handler: update id=%s error=%v", id, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteProductHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("productId")
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			logger.Printf("products handler: delete id=%s error=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product is deleted"})
	}
}

func relatedProductsHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("productId")
		related, err := svc.Related(c.Request.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			case errors.Is(err, productsvc.ErrNoRelated):
				c.JSON(http.StatusNotFound, gin.H{"message": "No related products found"})
			default:
				logger.Printf("products handler: related id=%s error=%v", id, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, related)
	}
}

func searchProductsHandler(svc productService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Param("query")
		products, err := svc.Search(c.Request.Context(), query)
		if err != nil {
			logger.Printf("products handler: search query=%q error=%v", query, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}
