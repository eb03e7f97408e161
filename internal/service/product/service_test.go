package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"store-admin/internal/domain"
)

type stubRepo struct {
	products   []domain.Product
	product    *domain.Product
	created    *domain.Product
	updated    *domain.Product
	related    []domain.Product
	err        error
	createErr  error
	updateErr  error
	deleteErr  error
	relatedErr error

	deleteCalls int
	lastCreate  domain.Product
	lastUpdate  domain.Product
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	if s.product == nil && s.err == nil {
		return nil, domain.ErrNotFound
	}
	return s.product, s.err
}

func (s *stubRepo) ListByIDs(_ context.Context, _ []string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastCreate = p
	return s.created, s.createErr
}

func (s *stubRepo) Update(_ context.Context, _ string, p domain.Product) (*domain.Product, error) {
	s.lastUpdate = p
	return s.updated, s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, _ string) error {
	s.deleteCalls++
	return s.deleteErr
}

func (s *stubRepo) Search(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubRepo) Related(_ context.Context, _ domain.Product) ([]domain.Product, error) {
	return s.related, s.relatedErr
}

func (s *stubRepo) RemoveCollectionFromAll(_ context.Context, _ string) error {
	return nil
}

func (s *stubRepo) UpsertByTitle(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

type stubCollectionRepo struct {
	collections    []domain.Collection
	listErr        error
	addErr         error
	removeErr      error
	removeAllErr   error
	addedTo        []string
	removedFrom    []string
	removeAllCalls int
}

func (s *stubCollectionRepo) AddProduct(_ context.Context, collectionID, _ string) error {
	s.addedTo = append(s.addedTo, collectionID)
	return s.addErr
}

func (s *stubCollectionRepo) RemoveProduct(_ context.Context, collectionID, _ string) error {
	s.removedFrom = append(s.removedFrom, collectionID)
	return s.removeErr
}

func (s *stubCollectionRepo) RemoveProductFromAll(_ context.Context, _ string) error {
	s.removeAllCalls++
	return s.removeAllErr
}

func (s *stubCollectionRepo) ListByIDs(_ context.Context, _ []string) ([]domain.Collection, error) {
	return s.collections, s.listErr
}

func validInput() Input {
	return Input{
		Title:       "Linen Shirt",
		Description: "Breathable linen shirt",
		Media:       []string{"https://example.com/p.jpg"},
		Category:    "shirts",
		Price:       decimal.NewFromFloat(39.99),
		Expense:     decimal.NewFromFloat(14.50),
	}
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubCollectionRepo{})

	cases := map[string]func(*Input){
		"missing title":    func(in *Input) { in.Title = "  " },
		"missing media":    func(in *Input) { in.Media = nil },
		"missing category": func(in *Input) { in.Category = "" },
		"price too low":    func(in *Input) { in.Price = decimal.NewFromFloat(0.01) },
		"expense too low":  func(in *Input) { in.Expense = decimal.Zero },
	}
	for name, mutate := range cases {
		in := validInput()
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("%s: expected ErrMissingFields, got %v", name, err)
		}
	}
}

func TestCreateAddsProductToCollections(t *testing.T) {
	repo := &stubRepo{created: &domain.Product{ID: "p1", Collections: []string{"c1", "c2"}}}
	collections := &stubCollectionRepo{}
	svc := New(repo, collections)

	in := validInput()
	in.Collections = []string{"c1", "c2"}
	got, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "p1" {
		t.Fatalf("unexpected product: %+v", got)
	}
	if len(collections.addedTo) != 2 {
		t.Fatalf("expected 2 collection repairs, got %v", collections.addedTo)
	}
}

func TestCreateSkipsVanishedCollection(t *testing.T) {
	repo := &stubRepo{created: &domain.Product{ID: "p1", Collections: []string{"gone"}}}
	collections := &stubCollectionRepo{addErr: domain.ErrNotFound}
	svc := New(repo, collections)

	in := validInput()
	in.Collections = []string{"gone"}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("expected vanished collection to be skipped, got %v", err)
	}
}

func TestUpdateRepairsCollectionDiff(t *testing.T) {
	repo := &stubRepo{
		product: &domain.Product{ID: "p1", Collections: []string{"c1", "c2"}},
		updated: &domain.Product{ID: "p1", Collections: []string{"c2", "c3"}},
	}
	collections := &stubCollectionRepo{}
	svc := New(repo, collections)

	in := validInput()
	in.Collections = []string{"c2", "c3"}
	if _, err := svc.Update(context.Background(), "p1", in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(collections.addedTo) != 1 || collections.addedTo[0] != "c3" {
		t.Fatalf("expected add to c3 only, got %v", collections.addedTo)
	}
	if len(collections.removedFrom) != 1 || collections.removedFrom[0] != "c1" {
		t.Fatalf("expected removal from c1 only, got %v", collections.removedFrom)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := New(&stubRepo{}, &stubCollectionRepo{})
	if _, err := svc.Update(context.Background(), "missing", validInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRepairsCollectionsFirst(t *testing.T) {
	repo := &stubRepo{product: &domain.Product{ID: "p1"}}
	collections := &stubCollectionRepo{}
	svc := New(repo, collections)

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if collections.removeAllCalls != 1 || repo.deleteCalls != 1 {
		t.Fatalf("expected repair then delete, got repairs=%d deletes=%d", collections.removeAllCalls, repo.deleteCalls)
	}
}

func TestDeleteStopsWhenRepairFails(t *testing.T) {
	repo := &stubRepo{product: &domain.Product{ID: "p1"}}
	collections := &stubCollectionRepo{removeAllErr: errors.New("boom")}
	svc := New(repo, collections)

	if err := svc.Delete(context.Background(), "p1"); err == nil {
		t.Fatal("expected repair error to surface")
	}
	if repo.deleteCalls != 0 {
		t.Fatalf("expected product row to survive failed repair, got %d deletes", repo.deleteCalls)
	}
}

func TestRelatedEmptyResult(t *testing.T) {
	repo := &stubRepo{product: &domain.Product{ID: "p1", Category: "shirts"}}
	svc := New(repo, &stubCollectionRepo{})

	if _, err := svc.Related(context.Background(), "p1"); !errors.Is(err, ErrNoRelated) {
		t.Fatalf("expected ErrNoRelated, got %v", err)
	}
}

func TestListIndexesCollections(t *testing.T) {
	repo := &stubRepo{products: []domain.Product{
		{ID: "p1", Collections: []string{"c1"}},
		{ID: "p2", Collections: []string{"c1"}},
	}}
	collections := &stubCollectionRepo{collections: []domain.Collection{{ID: "c1", Title: "Summer"}}}
	svc := New(repo, collections)

	products, index, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if index["c1"].Title != "Summer" {
		t.Fatalf("expected c1 in index, got %+v", index)
	}
}
