package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type collectionSeed struct {
	Title       string
	Description string
	Image       string
}

type productSeed struct {
	Title       string
	Description string
	Category    string
	Media       []string
	Tags        []string
	Sizes       []string
	Colors      []string
	Price       string
	Expense     string
	Collections []string // collection titles
}

// Apply inserts basic catalog data for manual testing. It is idempotent:
// collections upsert on title, products update in place when the title
// already exists, and cross references are set additions.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	collections := []collectionSeed{
		{
			Title:       "Summer Essentials",
			Description: "Light picks for warm days",
			Image:       "https://example.com/collections/summer.jpg",
		},
		{
			Title:       "Winter Warmers",
			Description: "Layers for the cold season",
			Image:       "https://example.com/collections/winter.jpg",
		},
	}

	collectionIDs := make(map[string]string, len(collections))
	for _, c := range collections {
		id, err := ensureCollection(ctx, pool, c)
		if err != nil {
			return fmt.Errorf("ensure collection %s: %w", c.Title, err)
		}
		collectionIDs[c.Title] = id
	}

	products := []productSeed{
		{
			Title:       "Linen Shirt",
			Description: "Breathable linen shirt",
			Category:    "shirts",
			Media:       []string{"https://example.com/products/linen-shirt.jpg"},
			Tags:        []string{"summer", "linen"},
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"White", "Sand"},
			Price:       "39.99",
			Expense:     "14.50",
			Collections: []string{"Summer Essentials"},
		},
		{
			Title:       "Wool Sweater",
			Description: "Heavy knit wool sweater",
			Category:    "sweaters",
			Media:       []string{"https://example.com/products/wool-sweater.jpg"},
			Tags:        []string{"winter", "wool"},
			Sizes:       []string{"M", "L", "XL"},
			Colors:      []string{"Navy", "Charcoal"},
			Price:       "79.99",
			Expense:     "32.00",
			Collections: []string{"Winter Warmers"},
		},
		{
			Title:       "Canvas Tote",
			Description: "Everyday canvas tote bag",
			Category:    "accessories",
			Media:       []string{"https://example.com/products/canvas-tote.jpg"},
			Tags:        []string{"summer", "bag"},
			Sizes:       []string{"One Size"},
			Colors:      []string{"Natural"},
			Price:       "24.99",
			Expense:     "8.00",
			Collections: []string{"Summer Essentials", "Winter Warmers"},
		},
	}

	for _, p := range products {
		productID, err := ensureProduct(ctx, pool, p)
		if err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Title, err)
		}
		for _, title := range p.Collections {
			collectionID, ok := collectionIDs[title]
			if !ok {
				return fmt.Errorf("product %s references unknown collection %s", p.Title, title)
			}
			if err := link(ctx, pool, productID, collectionID); err != nil {
				return fmt.Errorf("link product %s to collection %s: %w", p.Title, title, err)
			}
		}
	}

	return nil
}

func ensureCollection(ctx context.Context, pool *pgxpool.Pool, c collectionSeed) (string, error) {
	const q = `
INSERT INTO collections (title, description, image)
VALUES ($1, $2, $3)
ON CONFLICT (title) DO UPDATE
SET description = EXCLUDED.description,
    image = EXCLUDED.image
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, c.Title, c.Description, c.Image).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) (string, error) {
	const update = `
UPDATE products
SET description = $2, category = $3, media = $4, tags = $5, sizes = $6,
    colors = $7, price = $8, expense = $9, updated_at = now()
WHERE title = $1
RETURNING id::text
`
	var id string
	err := pool.QueryRow(ctx, update,
		p.Title, p.Description, p.Category, p.Media, p.Tags, p.Sizes, p.Colors, p.Price, p.Expense,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	const insert = `
INSERT INTO products (title, description, category, media, tags, sizes, colors, price, expense)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id::text
`
	err = pool.QueryRow(ctx, insert,
		p.Title, p.Description, p.Category, p.Media, p.Tags, p.Sizes, p.Colors, p.Price, p.Expense,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func link(ctx context.Context, pool *pgxpool.Pool, productID, collectionID string) error {
	const addToProduct = `
UPDATE products
SET collections = CASE WHEN collections @> ARRAY[$2::text] THEN collections ELSE array_append(collections, $2) END
WHERE id::text = $1
`
	if _, err := pool.Exec(ctx, addToProduct, productID, collectionID); err != nil {
		return err
	}

	const addToCollection = `
UPDATE collections
SET products = CASE WHEN products @> ARRAY[$2::text] THEN products ELSE array_append(products, $2) END
WHERE id::text = $1
`
	_, err := pool.Exec(ctx, addToCollection, collectionID, productID)
	return err
}
