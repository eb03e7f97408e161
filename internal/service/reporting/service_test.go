package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
)

type stubOrderRepo struct {
	orders  []domain.Order
	count   int64
	revenue decimal.Decimal
	err     error
}

func (s *stubOrderRepo) List(_ context.Context) ([]domain.Order, error) {
	return s.orders, s.err
}

func (s *stubOrderRepo) TotalSales(_ context.Context) (int64, decimal.Decimal, error) {
	return s.count, s.revenue, s.err
}

type stubCustomerRepo struct {
	count int64
	err   error
}

func (s *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return s.count, s.err
}

func orderAt(month time.Month, amount string) domain.Order {
	total, _ := decimal.NewFromString(amount)
	return domain.Order{
		TotalAmount: total,
		CreatedAt:   time.Date(2026, month, 15, 12, 0, 0, 0, time.Local),
	}
}

func TestTotalSales(t *testing.T) {
	svc := New(&stubOrderRepo{count: 3, revenue: decimal.NewFromFloat(149.97)}, &stubCustomerRepo{})

	got, err := svc.TotalSales(context.Background())
	if err != nil {
		t.Fatalf("total sales: %v", err)
	}
	if got.TotalOrders != 3 || !got.TotalRevenue.Equal(decimal.NewFromFloat(149.97)) {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestTotalCustomers(t *testing.T) {
	svc := New(&stubOrderRepo{}, &stubCustomerRepo{count: 7})

	got, err := svc.TotalCustomers(context.Background())
	if err != nil {
		t.Fatalf("total customers: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected 7 customers, got %d", got)
	}
}

func TestSalesPerMonthBuckets(t *testing.T) {
	orders := &stubOrderRepo{orders: []domain.Order{
		orderAt(time.January, "10"),
		orderAt(time.January, "15.50"),
		orderAt(time.June, "20"),
	}}
	svc := New(orders, &stubCustomerRepo{})

	got, err := svc.SalesPerMonth(context.Background())
	if err != nil {
		t.Fatalf("sales per month: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(got))
	}
	if got[0].Name != "Jan" || got[11].Name != "Dec" {
		t.Fatalf("unexpected bucket names: %s .. %s", got[0].Name, got[11].Name)
	}
	if !got[0].Sales.Equal(decimal.NewFromFloat(25.50)) {
		t.Fatalf("expected January total 25.50, got %s", got[0].Sales)
	}
	if !got[5].Sales.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected June total 20, got %s", got[5].Sales)
	}
	if !got[3].Sales.IsZero() {
		t.Fatalf("expected zero-filled April, got %s", got[3].Sales)
	}
}

func TestSalesPerMonthEmpty(t *testing.T) {
	svc := New(&stubOrderRepo{}, &stubCustomerRepo{})

	got, err := svc.SalesPerMonth(context.Background())
	if err != nil {
		t.Fatalf("sales per month: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(got))
	}
	for _, bucket := range got {
		if !bucket.Sales.IsZero() {
			t.Fatalf("expected all buckets zero, got %s=%s", bucket.Name, bucket.Sales)
		}
	}
}
