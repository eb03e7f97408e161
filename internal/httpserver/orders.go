package httpserver

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
	ordersvc "store-admin/internal/service/order"
)

// orderItemDetail is one order line with its catalog product attached.
// Product is null when the product was deleted after the sale.
type orderItemDetail struct {
	Product  *domain.Product `json:"product"`
	Color    string          `json:"color"`
	Size     string          `json:"size"`
	Quantity int             `json:"quantity"`
}

type orderResponse struct {
	ID              string                 `json:"id"`
	Customer        *domain.Customer       `json:"customer"`
	Products        []orderItemDetail      `json:"orderDetails"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	ShippingRate    string                 `json:"shippingRate"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	CreatedAt       time.Time              `json:"createdAt"`
}

func listOrdersHandler(svc orderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := svc.List(c.Request.Context())
		if err != nil {
			logger.Printf("orders handler: list error=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if summaries == nil {
			summaries = []ordersvc.Summary{}
		}
		c.JSON(http.StatusOK, summaries)
	}
}

func getOrderHandler(svc orderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderId")
		detail, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			logger.Printf("orders handler: get id=%s error=%v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		items := make([]orderItemDetail, 0, len(detail.Order.Items))
		for _, it := range detail.Order.Items {
			var product *domain.Product
			if p, ok := detail.Products[it.Product]; ok {
				copied := p
				product = &copied
			}
			items = append(items, orderItemDetail{
				Product:  product,
				Color:    it.Color,
				Size:     it.Size,
				Quantity: it.Quantity,
			})
		}

		c.JSON(http.StatusOK, orderResponse{
			ID:              detail.Order.ID,
			Customer:        detail.Customer,
			Products:        items,
			ShippingAddress: detail.Order.ShippingAddress,
			ShippingRate:    detail.Order.ShippingRate,
			TotalAmount:     detail.Order.TotalAmount,
			CreatedAt:       detail.Order.CreatedAt,
		})
	}
}

func ordersByCustomerHandler(svc orderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clerkID := c.Param("customerId")
		orders, err := svc.ListByCustomer(c.Request.Context(), clerkID)
		if err != nil {
			logger.Printf("orders handler: list by customer clerk_id=%s error=%v", clerkID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}
