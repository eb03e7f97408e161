package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

type stubProductRepo struct {
	items []domain.Product
}

func (s *stubProductRepo) UpsertByTitle(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `title,description,category,price,expense,media,tags,sizes,colors
Winter Hoodie,Warm fleece hoodie,hoodies,49.99,20,https://example.com/h1.jpg;https://example.com/h2.jpg,winter;sale,S;M;L,Black;Gray
Plain Tee,Cotton tee,tees,19.50,,https://example.com/t1.jpg,,M,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}

	first := repo.items[0]
	if first.Title != "Winter Hoodie" || first.Category != "hoodies" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if !first.Price.Equal(decimalFromString(t, "49.99")) || !first.Expense.Equal(decimalFromString(t, "20")) {
		t.Fatalf("unexpected amounts: price=%s expense=%s", first.Price, first.Expense)
	}
	if len(first.Media) != 2 || len(first.Tags) != 2 || len(first.Sizes) != 3 || len(first.Colors) != 2 {
		t.Fatalf("unexpected list columns: %+v", first)
	}

	second := repo.items[1]
	if !second.Expense.IsZero() {
		t.Fatalf("expected zero expense for row without one, got %s", second.Expense)
	}
	if second.Tags != nil || second.Colors != nil {
		t.Fatalf("expected empty list columns to stay nil: %+v", second)
	}
}

func TestCSVImporter_SkipsBlankRows(t *testing.T) {
	csvData := `title,description,category,price
Plain Tee,Cotton tee,tees,19.50
,,,`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported, got %d", count)
	}
}

func TestCSVImporter_RejectsIncompleteRow(t *testing.T) {
	csvData := `title,description,category,price
Plain Tee,Cotton tee,,19.50`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for row without category")
	}
}

func TestCSVImporter_RejectsBadPrice(t *testing.T) {
	csvData := `title,description,category,price
Plain Tee,Cotton tee,tees,abc`

	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo)

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for unparseable price")
	}
}
