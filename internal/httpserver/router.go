package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stripe/stripe-go/v81"
	"store-admin/internal/domain"
	"store-admin/internal/identity"
	checkoutsvc "store-admin/internal/service/checkout"
	collectionsvc "store-admin/internal/service/collection"
	ordersvc "store-admin/internal/service/order"
	productsvc "store-admin/internal/service/product"
	reportingsvc "store-admin/internal/service/reporting"
)

type collectionService interface {
	Create(ctx context.Context, in collectionsvc.Input) (*domain.Collection, error)
	List(ctx context.Context) ([]domain.Collection, error)
	Get(ctx context.Context, id string) (*domain.Collection, []domain.Product, error)
	Update(ctx context.Context, id string, in collectionsvc.Input) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error
}

type productService interface {
	Create(ctx context.Context, in productsvc.Input) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, map[string]domain.Collection, error)
	Get(ctx context.Context, id string) (*domain.Product, []domain.Collection, error)
	Update(ctx context.Context, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Related(ctx context.Context, id string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

type checkoutService interface {
	CreateSession(ctx context.Context, in checkoutsvc.Input) (*stripe.CheckoutSession, error)
}

type orderService interface {
	Finalize(ctx context.Context, payload []byte, signature string) error
	List(ctx context.Context) ([]ordersvc.Summary, error)
	Get(ctx context.Context, id string) (*ordersvc.Detail, error)
	ListByCustomer(ctx context.Context, clerkID string) ([]domain.Order, error)
}

type reportingService interface {
	TotalSales(ctx context.Context) (reportingsvc.TotalSales, error)
	TotalCustomers(ctx context.Context) (int64, error)
	SalesPerMonth(ctx context.Context) ([]reportingsvc.MonthlySales, error)
}

// Deps carries the services the router dispatches to.
type Deps struct {
	CollectionSvc collectionService
	ProductSvc    productService
	CheckoutSvc   checkoutService
	OrderSvc      orderService
	ReportingSvc  reportingService
	Identity      identity.Provider
}

// Options carries router-level settings.
type Options struct {
	// StorefrontOrigin scopes cross-origin reads on the public catalog
	// endpoints. The checkout endpoint is always open to any origin.
	StorefrontOrigin string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	switch {
	case deps.CollectionSvc == nil, deps.ProductSvc == nil, deps.CheckoutSvc == nil,
		deps.OrderSvc == nil, deps.ReportingSvc == nil, deps.Identity == nil:
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := requireIdentity(deps.Identity, logger)

	// Public storefront reads: scoped CORS, never cached.
	storefrontCORS := cors.New(cors.Config{
		AllowOrigins: []string{opts.StorefrontOrigin},
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Content-Type"},
	})
	public := router.Group("/", storefrontCORS, noStore())
	public.GET("/collections", listCollectionsHandler(deps.CollectionSvc, logger))
	public.GET("/collections/:collectionId", getCollectionHandler(deps.CollectionSvc, logger))
	public.GET("/products", listProductsHandler(deps.ProductSvc, logger))
	public.GET("/products/:productId", getProductHandler(deps.ProductSvc, logger))
	public.GET("/products/:productId/related", relatedProductsHandler(deps.ProductSvc, logger))
	public.GET("/search/:query", searchProductsHandler(deps.ProductSvc, logger))

	// Admin mutations and order/analytics reads require a caller
	// identity resolved by the external provider.
	router.POST("/collections", auth, createCollectionHandler(deps.CollectionSvc, logger))
	router.POST("/collections/:collectionId", auth, updateCollectionHandler(deps.CollectionSvc, logger))
	router.DELETE("/collections/:collectionId", auth, deleteCollectionHandler(deps.CollectionSvc, logger))
	router.POST("/products", auth, createProductHandler(deps.ProductSvc, logger))
	router.POST("/products/:productId", auth, updateProductHandler(deps.ProductSvc, logger))
	router.DELETE("/products/:productId", auth, deleteProductHandler(deps.ProductSvc, logger))

	orders := router.Group("/orders", auth, noStore())
	orders.GET("", listOrdersHandler(deps.OrderSvc, logger))
	orders.GET("/:orderId", getOrderHandler(deps.OrderSvc, logger))
	orders.GET("/customers/:customerId", ordersByCustomerHandler(deps.OrderSvc, logger))

	analytics := router.Group("/analytics", auth, noStore())
	analytics.GET("/sales", totalSalesHandler(deps.ReportingSvc, logger))
	analytics.GET("/customers", totalCustomersHandler(deps.ReportingSvc, logger))
	analytics.GET("/sales-per-month", salesPerMonthHandler(deps.ReportingSvc, logger))

	// Checkout serves a third-party storefront from any origin and must
	// answer its preflight.
	checkoutCORS := cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	})
	checkout := router.Group("/checkout", checkoutCORS)
	checkout.POST("", checkoutHandler(deps.CheckoutSvc, logger))
	checkout.OPTIONS("", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.POST("/webhooks", webhookHandler(deps.OrderSvc, logger))

	return router, nil
}
