package customer

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

func (r *postgresRepo) GetByClerkID(ctx context.Context, clerkID string) (*domain.Customer, error) {
	const q = `
SELECT id::text, clerk_id, name, email, orders, created_at
FROM customers
WHERE clerk_id = $1
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, clerkID).Scan(&c.ID, &c.ClerkID, &c.Name, &c.Email, &c.Orders, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get clerk_id=%s error=%v", clerkID, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) AppendOrder(ctx context.Context, clerkID, name, email, orderID string) (*domain.Customer, error) {
	// On conflict the existing name/email stay as first captured; only
	// the order list grows, and only if the id is not already present.
	const q = `
INSERT INTO customers (clerk_id, name, email, orders)
VALUES ($1, $2, $3, ARRAY[$4::text])
ON CONFLICT (clerk_id) DO UPDATE
SET orders = CASE WHEN customers.orders @> ARRAY[$4::text] THEN customers.orders
                  ELSE array_append(customers.orders, $4) END
RETURNING id::text, clerk_id, name, email, orders, created_at
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, clerkID, name, email, orderID).
		Scan(&c.ID, &c.ClerkID, &c.Name, &c.Email, &c.Orders, &c.CreatedAt)
	if err != nil {
		r.logger.Printf("customer repo: append order clerk_id=%s order_id=%s error=%v", clerkID, orderID, err)
		return nil, err
	}
	r.logger.Printf("customer repo: append order clerk_id=%s order_id=%s orders=%d", clerkID, orderID, len(c.Orders))
	return &c, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		r.logger.Printf("customer repo: count error=%v", err)
		return 0, err
	}
	return count, nil
}
