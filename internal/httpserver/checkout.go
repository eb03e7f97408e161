package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutsvc "store-admin/internal/service/checkout"
)

func checkoutHandler(svc checkoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough data to checkout"})
			return
		}
		sess, err := svc.CreateSession(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrMissingData) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough data to checkout"})
				return
			}
			logger.Printf("checkout handler: create session error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}
