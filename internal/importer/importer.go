package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
)

type ProductWriter interface {
	UpsertByTitle(ctx context.Context, p domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products
// keyed by title.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. List-valued
// columns (media, tags, sizes, colors) hold semicolon-separated values.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		p, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if p == nil {
			continue
		}

		if _, err := i.productRepo.UpsertByTitle(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Title, err)
		}
		imported++
	}

	return imported, nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	title := pick(record, index, "title")
	if title == "" {
		return nil, nil
	}

	category := pick(record, index, "category")
	priceStr := pick(record, index, "price")
	if category == "" || priceStr == "" {
		return nil, fmt.Errorf("invalid product row (missing required fields) for title %q", title)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid price for title %q: %s", title, priceStr)
	}

	expense := decimal.Zero
	if s := pick(record, index, "expense"); s != "" {
		expense, err = decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid expense for title %q: %s", title, s)
		}
	}

	return &domain.Product{
		Title:       title,
		Description: pick(record, index, "description"),
		Category:    category,
		Media:       pickList(record, index, "media"),
		Tags:        pickList(record, index, "tags"),
		Sizes:       pickList(record, index, "sizes"),
		Colors:      pickList(record, index, "colors"),
		Price:       price,
		Expense:     expense,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func pickList(record []string, index map[string]int, key string) []string {
	raw := pick(record, index, key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
