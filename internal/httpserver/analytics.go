package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func totalSalesHandler(svc reportingService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		totals, err := svc.TotalSales(c.Request.Context())
		if err != nil {
			logger.Printf("analytics handler: total sales error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, totals)
	}
}

func totalCustomersHandler(svc reportingService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.TotalCustomers(c.Request.Context())
		if err != nil {
			logger.Printf("analytics handler: total customers error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"totalCustomers": count})
	}
}

func salesPerMonthHandler(svc reportingService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		graph, err := svc.SalesPerMonth(c.Request.Context())
		if err != nil {
			logger.Printf("analytics handler: sales per month error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, graph)
	}
}
