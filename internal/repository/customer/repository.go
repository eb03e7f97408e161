package customer

import (
	"context"

	"store-admin/internal/domain"
)

type Repository interface {
	GetByClerkID(ctx context.Context, clerkID string) (*domain.Customer, error)

	// AppendOrder upserts the customer for an external identity and
	// set-appends the order id to its order list in a single atomic
	// statement, so two concurrent checkout completions for the same
	// identity cannot lose an order reference.
	AppendOrder(ctx context.Context, clerkID, name, email, orderID string) (*domain.Customer, error)

	Count(ctx context.Context) (int64, error)
}
