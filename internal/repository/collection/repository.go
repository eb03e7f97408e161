package collection

import (
	"context"

	"store-admin/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Collection, error)
	GetByID(ctx context.Context, id string) (*domain.Collection, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Collection, error)
	GetByTitle(ctx context.Context, title string) (*domain.Collection, error)
	Create(ctx context.Context, c domain.Collection) (*domain.Collection, error)
	Update(ctx context.Context, id string, c domain.Collection) (*domain.Collection, error)
	Delete(ctx context.Context, id string) error

	// AddProduct and RemoveProduct maintain the collection side of the
	// Product<->Collection reference lists with set semantics, so
	// retrying a partially completed repair is safe.
	AddProduct(ctx context.Context, collectionID, productID string) error
	RemoveProduct(ctx context.Context, collectionID, productID string) error
	RemoveProductFromAll(ctx context.Context, productID string) error
}
