package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Media       []string        `json:"media"`
	Category    string          `json:"category"`
	Collections []string        `json:"collections"`
	Tags        []string        `json:"tags"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Price       decimal.Decimal `json:"price"`
	Expense     decimal.Decimal `json:"expense"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
