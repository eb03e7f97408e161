package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"store-admin/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, title, description, media, category, collections, tags, sizes, colors, price, expense, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Media, &p.Category, &p.Collections,
		&p.Tags, &p.Sizes, &p.Colors, &p.Price, &p.Expense, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) queryProducts(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	result, err := r.queryProducts(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id::text = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id::text = ANY($1)
ORDER BY created_at DESC
`
	result, err := r.queryProducts(ctx, q, ids)
	if err != nil {
		r.logger.Printf("product repo: list by ids error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (title, description, media, category, collections, tags, sizes, colors, price, expense)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id::text, created_at, updated_at
`
	out := p
	err := r.pool.QueryRow(ctx, q,
		p.Title, p.Description, textArray(p.Media), p.Category, textArray(p.Collections),
		textArray(p.Tags), textArray(p.Sizes), textArray(p.Colors), p.Price, p.Expense,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: create title=%q error=%v", p.Title, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s title=%q", out.ID, out.Title)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET title = $2, description = $3, media = $4, category = $5, collections = $6,
    tags = $7, sizes = $8, colors = $9, price = $10, expense = $11, updated_at = now()
WHERE id::text = $1
RETURNING ` + productColumns + `
`
	out, err := scanProduct(r.pool.QueryRow(ctx, q, id,
		p.Title, p.Description, textArray(p.Media), p.Category, textArray(p.Collections),
		textArray(p.Tags), textArray(p.Sizes), textArray(p.Colors), p.Price, p.Expense))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id::text = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE title ILIKE '%' || $1 || '%'
   OR category ILIKE '%' || $1 || '%'
   OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE '%' || $1 || '%')
ORDER BY created_at DESC
`
	result, err := r.queryProducts(ctx, q, query)
	if err != nil {
		r.logger.Printf("product repo: search query=%q error=%v", query, err)
		return nil, err
	}
	r.logger.Printf("product repo: search query=%q count=%d", query, len(result))
	return result, nil
}

func (r *postgresRepo) Related(ctx context.Context, p domain.Product) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id::text <> $1
  AND (category = $2 OR collections && $3)
ORDER BY created_at DESC
`
	result, err := r.queryProducts(ctx, q, p.ID, p.Category, textArray(p.Collections))
	if err != nil {
		r.logger.Printf("product repo: related id=%s error=%v", p.ID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) RemoveCollectionFromAll(ctx context.Context, collectionID string) error {
	const q = `
UPDATE products
SET collections = array_remove(collections, $1), updated_at = now()
WHERE collections @> ARRAY[$1::text]
`
	if _, err := r.pool.Exec(ctx, q, collectionID); err != nil {
		r.logger.Printf("product repo: remove collection from all collection=%s error=%v", collectionID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) UpsertByTitle(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const update = `
UPDATE products
SET description = $2, media = $3, category = $4, tags = $5, sizes = $6,
    colors = $7, price = $8, expense = $9, updated_at = now()
WHERE title = $1
RETURNING ` + productColumns + `
`
	out, err := scanProduct(r.pool.QueryRow(ctx, update,
		p.Title, p.Description, textArray(p.Media), p.Category,
		textArray(p.Tags), textArray(p.Sizes), textArray(p.Colors), p.Price, p.Expense))
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("product repo: upsert title=%q error=%v", p.Title, err)
		return nil, err
	}
	return r.Create(ctx, p)
}

// textArray keeps nil slices out of text[] params so empty lists are
// stored as '{}' rather than NULL.
func textArray(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
