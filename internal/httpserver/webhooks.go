package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// webhookHandler receives raw payment provider deliveries. Responses
// are plain text: anything but 200 makes the provider redeliver, so a
// non-actionable event still answers 200 once it verifies.
func webhookHandler(svc orderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := c.GetRawData()
		if err != nil {
			logger.Printf("webhook handler: read body error=%v", err)
			c.String(http.StatusInternalServerError, "Failed to create the order")
			return
		}

		signature := c.GetHeader("Stripe-Signature")
		if err := svc.Finalize(c.Request.Context(), payload, signature); err != nil {
			logger.Printf("webhook handler: finalize error=%v", err)
			c.String(http.StatusInternalServerError, "Failed to create the order")
			return
		}
		c.String(http.StatusOK, "Order created")
	}
}
