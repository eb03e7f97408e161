package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

const orderColumns = `id::text, checkout_session_id, customer_clerk_id, items,
shipping_street, shipping_city, shipping_state, shipping_postal_code, shipping_country,
shipping_rate, total_amount, created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CheckoutSessionID, &o.CustomerClerkID, &o.Items,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.ShippingRate, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) CreateFromSession(ctx context.Context, o domain.Order) (*domain.Order, bool, error) {
	const q = `
INSERT INTO orders (checkout_session_id, customer_clerk_id, items,
    shipping_street, shipping_city, shipping_state, shipping_postal_code, shipping_country,
    shipping_rate, total_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (checkout_session_id) DO NOTHING
RETURNING id::text, created_at
`
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	out := o
	err := r.pool.QueryRow(ctx, q,
		o.CheckoutSessionID, o.CustomerClerkID, items,
		o.ShippingAddress.Street, o.ShippingAddress.City, o.ShippingAddress.State,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
		o.ShippingRate, o.TotalAmount,
	).Scan(&out.ID, &out.CreatedAt)
	if err == nil {
		r.logger.Printf("order repo: created id=%s session_id=%s", out.ID, out.CheckoutSessionID)
		return &out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Printf("order repo: create session_id=%s error=%v", o.CheckoutSessionID, err)
		return nil, false, err
	}

	// Conflict: this session was already finalized. Return the order it
	// produced the first time.
	existing, err := r.getBySessionID(ctx, o.CheckoutSessionID)
	if err != nil {
		return nil, false, err
	}
	r.logger.Printf("order repo: duplicate session_id=%s existing_id=%s", o.CheckoutSessionID, existing.ID)
	return existing, false, nil
}

func (r *postgresRepo) getBySessionID(ctx context.Context, sessionID string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE checkout_session_id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get session_id=%s error=%v", sessionID, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id::text = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByClerkID(ctx context.Context, clerkID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE customer_clerk_id = $1
ORDER BY created_at DESC
`
	return r.queryOrders(ctx, q, clerkID)
}

func (r *postgresRepo) TotalSales(ctx context.Context) (int64, decimal.Decimal, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders`
	var (
		count int64
		sum   decimal.Decimal
	)
	if err := r.pool.QueryRow(ctx, q).Scan(&count, &sum); err != nil {
		r.logger.Printf("order repo: total sales error=%v", err)
		return 0, decimal.Zero, err
	}
	return count, sum, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: query rows error=%v", err)
		return nil, err
	}
	return result, nil
}
