package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"store-admin/internal/domain"
	collectionrepo "store-admin/internal/repository/collection"
)

// ErrMissingFields is returned when a create/update payload lacks the
// required title or image. Distinct from domain.ErrAlreadyExists so
// handlers can word the two 400s differently.
var ErrMissingFields = errors.New("title and image are required")

type Service struct {
	repo     collectionrepo.Repository
	products productRepo
}

type productRepo interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	RemoveCollectionFromAll(ctx context.Context, collectionID string) error
}

func New(repo collectionrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Image) == "" {
		return ErrMissingFields
	}
	return nil
}

// Create rejects duplicate titles before inserting; title uniqueness is
// also enforced by the store, so a race falls back to the same error.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Collection, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByTitle(ctx, in.Title)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("collection %q: %w", in.Title, domain.ErrAlreadyExists)
	}

	return s.repo.Create(ctx, domain.Collection{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
	})
}

func (s *Service) List(ctx context.Context) ([]domain.Collection, error) {
	return s.repo.List(ctx)
}

// Get returns a collection with its referenced products populated.
func (s *Service) Get(ctx context.Context, id string) (*domain.Collection, []domain.Product, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.products.ListByIDs(ctx, c.Products)
	if err != nil {
		return nil, nil, err
	}
	return c, products, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Collection, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, domain.Collection{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
	})
}

// Delete strips the collection id from every product that references it
// and then removes the row. The repair runs first so a failure between
// the two steps never leaves a dangling reference, and a retry after a
// partial run re-runs the idempotent repair and finishes the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.products.RemoveCollectionFromAll(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
