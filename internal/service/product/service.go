package product

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
	productrepo "store-admin/internal/repository/product"
)

// ErrMissingFields is returned when a create/update payload lacks a
// required field or carries a price/expense below the minimum.
var ErrMissingFields = errors.New("not enough data to create a product")

// ErrNoRelated is returned when a related-product lookup finds nothing.
var ErrNoRelated = errors.New("no related products found")

var minAmount = decimal.NewFromFloat(0.1)

type Service struct {
	repo        productrepo.Repository
	collections collectionRepo
}

type collectionRepo interface {
	AddProduct(ctx context.Context, collectionID, productID string) error
	RemoveProduct(ctx context.Context, collectionID, productID string) error
	RemoveProductFromAll(ctx context.Context, productID string) error
	ListByIDs(ctx context.Context, ids []string) ([]domain.Collection, error)
}

func New(repo productrepo.Repository, collections collectionRepo) *Service {
	return &Service{repo: repo, collections: collections}
}

type Input struct {
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
}

func (in Input) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "",
		strings.TrimSpace(in.Description) == "",
		len(in.Media) == 0,
		strings.TrimSpace(in.Category) == "",
		in.Price.LessThan(minAmount),
		in.Expense.LessThan(minAmount):
		return ErrMissingFields
	}
	return nil
}

func (in Input) toDomain() domain.Product {
	return domain.Product{
		Title:       in.Title,
		Description: in.Description,
		Media:       in.Media,
		Category:    in.Category,
		Collections: in.Collections,
		Tags:        in.Tags,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Price:       in.Price,
		Expense:     in.Expense,
	}
}

// Create inserts the product, then set-adds its id into every
// referenced collection. A collection id that no longer exists is
// skipped; any other repair failure is surfaced so the caller retries
// the whole operation (the set-add is a no-op on repeat).
func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, in.toDomain())
	if err != nil {
		return nil, err
	}

	for _, collectionID := range created.Collections {
		if err := s.collections.AddProduct(ctx, collectionID, created.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Product, map[string]domain.Collection, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	index, err := s.collectionIndex(ctx, products)
	if err != nil {
		return nil, nil, err
	}
	return products, index, nil
}

// Get returns a product along with its populated collections.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, []domain.Collection, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	collections, err := s.collections.ListByIDs(ctx, p.Collections)
	if err != nil {
		return nil, nil, err
	}
	return p, collections, nil
}

// Update diffs the old and new collection lists and repairs both sides
// of the reference before the product row itself is rewritten, so a
// failure between the steps leaves repairs that a retry completes
// rather than dangling references behind an already-updated product.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	old, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, collectionID := range diff(in.Collections, old.Collections) {
		if err := s.collections.AddProduct(ctx, collectionID, old.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	for _, collectionID := range diff(old.Collections, in.Collections) {
		if err := s.collections.RemoveProduct(ctx, collectionID, old.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, in.toDomain())
}

// Delete pulls the product's id out of every collection it belonged to,
// then deletes the product row.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.collections.RemoveProductFromAll(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Related finds products in the same category or sharing a collection,
// excluding the product itself. An empty result is ErrNoRelated.
func (s *Service) Related(ctx context.Context, id string) ([]domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.repo.Related(ctx, *p)
	if err != nil {
		return nil, err
	}
	if len(related) == 0 {
		return nil, ErrNoRelated
	}
	return related, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.repo.Search(ctx, query)
}

func (s *Service) collectionIndex(ctx context.Context, products []domain.Product) (map[string]domain.Collection, error) {
	seen := map[string]bool{}
	var ids []string
	for _, p := range products {
		for _, id := range p.Collections {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	collections, err := s.collections.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[string]domain.Collection, len(collections))
	for _, c := range collections {
		index[c.ID] = c
	}
	return index, nil
}

// diff returns the elements of a that are not in b.
func diff(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	var out []string
	for _, v := range a {
		if !inB[v] {
			out = append(out, v)
		}
	}
	return out
}
