package reporting

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
)

type Service struct {
	orders    orderRepo
	customers customerRepo
}

type orderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	TotalSales(ctx context.Context) (int64, decimal.Decimal, error)
}

type customerRepo interface {
	Count(ctx context.Context) (int64, error)
}

func New(orders orderRepo, customers customerRepo) *Service {
	return &Service{orders: orders, customers: customers}
}

type TotalSales struct {
	TotalOrders  int64           `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

// TotalSales is a full scan over orders; accuracy over latency.
func (s *Service) TotalSales(ctx context.Context) (TotalSales, error) {
	count, revenue, err := s.orders.TotalSales(ctx)
	if err != nil {
		return TotalSales{}, err
	}
	return TotalSales{TotalOrders: count, TotalRevenue: revenue}, nil
}

func (s *Service) TotalCustomers(ctx context.Context) (int64, error) {
	return s.customers.Count(ctx)
}

// MonthlySales is one bucket of the dashboard sales graph.
type MonthlySales struct {
	Name  string          `json:"name"`
	Sales decimal.Decimal `json:"sales"`
}

// SalesPerMonth buckets every order by the calendar month of its
// creation time in the service's local zone and always returns twelve
// entries in calendar order, zero-filled for months without orders.
func (s *Service) SalesPerMonth(ctx context.Context) ([]MonthlySales, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	var buckets [12]decimal.Decimal
	for i := range buckets {
		buckets[i] = decimal.Zero
	}
	for _, o := range orders {
		idx := int(o.CreatedAt.Local().Month()) - 1
		buckets[idx] = buckets[idx].Add(o.TotalAmount)
	}

	result := make([]MonthlySales, 0, 12)
	for i, sales := range buckets {
		result = append(result, MonthlySales{
			Name:  time.Month(i + 1).String()[:3],
			Sales: sales,
		})
	}
	return result, nil
}
