package order

import (
	"context"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
)

type Repository interface {
	// CreateFromSession inserts an order keyed by its checkout session
	// id. Redelivery of an already-finalized session returns the
	// existing order with created=false instead of a second row.
	CreateFromSession(ctx context.Context, o domain.Order) (*domain.Order, bool, error)

	List(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByClerkID(ctx context.Context, clerkID string) ([]domain.Order, error)

	// TotalSales scans all orders and returns their count and revenue sum.
	TotalSales(ctx context.Context) (int64, decimal.Decimal, error)
}
