package product

import (
	"context"

	"store-admin/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error

	// Search matches the query case-insensitively against title,
	// category, or any tag.
	Search(ctx context.Context, query string) ([]domain.Product, error)
	// Related returns products sharing a category or a collection with
	// the given product, excluding the product itself.
	Related(ctx context.Context, p domain.Product) ([]domain.Product, error)
	// RemoveCollectionFromAll strips a deleted collection's id from
	// every product that references it.
	RemoveCollectionFromAll(ctx context.Context, collectionID string) error
	// UpsertByTitle updates the product with a matching title or inserts
	// a new one. Used by bulk imports.
	UpsertByTitle(ctx context.Context, p domain.Product) (*domain.Product, error)
}
