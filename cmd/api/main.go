package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"store-admin/internal/config"
	"store-admin/internal/db"
	"store-admin/internal/httpserver"
	"store-admin/internal/identity"
	"store-admin/internal/payment"
	collectionrepo "store-admin/internal/repository/collection"
	customerrepo "store-admin/internal/repository/customer"
	orderrepo "store-admin/internal/repository/order"
	productrepo "store-admin/internal/repository/product"
	checkoutsvc "store-admin/internal/service/checkout"
	collectionsvc "store-admin/internal/service/collection"
	ordersvc "store-admin/internal/service/order"
	productsvc "store-admin/internal/service/product"
	reportingsvc "store-admin/internal/service/reporting"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Open(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	collectionRepo := collectionrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)

	gateway := payment.NewGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, logger)
	identityClient := identity.NewClient(cfg.IdentityVerifyURL, cfg.IdentityAPIKey, logger)

	collectionService := collectionsvc.New(collectionRepo, productRepo)
	productService := productsvc.New(productRepo, collectionRepo)
	checkoutService := checkoutsvc.New(gateway, checkoutsvc.Options{
		StorefrontURL:     cfg.StorefrontURL,
		ShippingRateIDs:   cfg.ShippingRateIDs,
		ShippingCountries: cfg.ShippingCountries,
	})
	orderService := ordersvc.New(orderRepo, customerRepo, productRepo, gateway, logger)
	reportingService := reportingsvc.New(orderRepo, customerRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CollectionSvc: collectionService,
		ProductSvc:    productService,
		CheckoutSvc:   checkoutService,
		OrderSvc:      orderService,
		ReportingSvc:  reportingService,
		Identity:      identityClient,
	}, httpserver.Options{
		StorefrontOrigin: cfg.StorefrontURL,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
