package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"store-admin/internal/domain"
	collectionsvc "store-admin/internal/service/collection"
)

// collectionDetail is a collection with its product references
// populated.
type collectionDetail struct {
	domain.Collection
	Products []domain.Product `json:"products"`
}

func listCollectionsHandler(svc collectionService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		collections, err := svc.List(c.Request.Context())
		if err != nil {
			logger.Printf("collections handler: list error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if collections == nil {
			collections = []domain.Collection{}
		}
		c.JSON(http.StatusOK, collections)
	}
}

func getCollectionHandler(svc collectionService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("collectionId")
		col, products, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
				return
			}
			logger.Printf("collections handler: get id=%s error=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, collectionDetail{Collection: *col, Products: products})
	}
}

func createCollectionHandler(svc collectionService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in collectionsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAlreadyExists):
				c.JSON(http.StatusBadRequest, gin.H{"error": "collection already exists"})
			case errors.Is(err, collectionsvc.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Printf("collections handler: create error=%v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func updateCollectionHandler(svc collectionService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("collectionId")
		var in collectionsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
			case errors.Is(err, collectionsvc.ErrMissingFields):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.Printf("collections handler: update id=%s error=%v", id, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteCollectionHandler(svc collectionService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("collectionId")
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Collection not found"})
				return
			}
			logger.Printf("collections handler: delete id=%s error=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Collection is deleted"})
	}
}
