package collection

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

const collectionColumns = `id::text, title, COALESCE(description, ''), image, products, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Collection, error) {
	const q = `
SELECT ` + collectionColumns + `
FROM collections
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("collection repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Products, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("collection repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Collection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `
SELECT ` + collectionColumns + `
FROM collections
WHERE id::text = ANY($1)
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("collection repo: list by ids error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Products, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	const q = `
SELECT ` + collectionColumns + `
FROM collections
WHERE id::text = $1
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByTitle(ctx context.Context, title string) (*domain.Collection, error) {
	const q = `
SELECT ` + collectionColumns + `
FROM collections
WHERE title = $1
`
	return r.getOne(ctx, q, title)
}

func (r *postgresRepo) getOne(ctx context.Context, q, arg string) (*domain.Collection, error) {
	var c domain.Collection
	err := r.pool.QueryRow(ctx, q, arg).Scan(&c.ID, &c.Title, &c.Description, &c.Image, &c.Products, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("collection repo: get %q error=%v", arg, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	const q = `
INSERT INTO collections (title, description, image)
VALUES ($1, NULLIF($2, ''), $3)
RETURNING id::text, created_at
`
	out := c
	err := r.pool.QueryRow(ctx, q, c.Title, c.Description, c.Image).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("collection repo: create title=%q error=%v", c.Title, err)
		return nil, err
	}
	out.Products = []string{}
	r.logger.Printf("collection repo: created id=%s title=%q", out.ID, out.Title)
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, c domain.Collection) (*domain.Collection, error) {
	const q = `
UPDATE collections
SET title = $2, description = NULLIF($3, ''), image = $4
WHERE id::text = $1
RETURNING ` + collectionColumns + `
`
	var out domain.Collection
	err := r.pool.QueryRow(ctx, q, id, c.Title, c.Description, c.Image).
		Scan(&out.ID, &out.Title, &out.Description, &out.Image, &out.Products, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("collection repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM collections WHERE id::text = $1`, id)
	if err != nil {
		r.logger.Printf("collection repo: delete id=%s error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("collection repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) AddProduct(ctx context.Context, collectionID, productID string) error {
	// Set-add: appending an id that is already present is a no-op, so a
	// retried repair never duplicates entries.
	const q = `
UPDATE collections
SET products = CASE WHEN products @> ARRAY[$2::text] THEN products ELSE array_append(products, $2) END
WHERE id::text = $1
`
	tag, err := r.pool.Exec(ctx, q, collectionID, productID)
	if err != nil {
		r.logger.Printf("collection repo: add product collection=%s product=%s error=%v", collectionID, productID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	const q = `
UPDATE collections
SET products = array_remove(products, $2)
WHERE id::text = $1
`
	tag, err := r.pool.Exec(ctx, q, collectionID, productID)
	if err != nil {
		r.logger.Printf("collection repo: remove product collection=%s product=%s error=%v", collectionID, productID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RemoveProductFromAll(ctx context.Context, productID string) error {
	const q = `
UPDATE collections
SET products = array_remove(products, $1)
WHERE products @> ARRAY[$1::text]
`
	if _, err := r.pool.Exec(ctx, q, productID); err != nil {
		r.logger.Printf("collection repo: remove product from all product=%s error=%v", productID, err)
		return err
	}
	return nil
}
