package collection

import (
	"context"
	"errors"
	"testing"

	"store-admin/internal/domain"
)

type stubRepo struct {
	collections []domain.Collection
	collection  *domain.Collection
	byTitle     *domain.Collection
	created     *domain.Collection
	updated     *domain.Collection
	err         error
	titleErr    error
	createErr   error
	deleteErr   error

	createCalls int
	deleteCalls int
	lastCreate  domain.Collection
}

func (s *stubRepo) List(_ context.Context) ([]domain.Collection, error) {
	return s.collections, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Collection, error) {
	if s.collection == nil && s.err == nil {
		return nil, domain.ErrNotFound
	}
	return s.collection, s.err
}

func (s *stubRepo) ListByIDs(_ context.Context, _ []string) ([]domain.Collection, error) {
	return s.collections, s.err
}

func (s *stubRepo) GetByTitle(_ context.Context, _ string) (*domain.Collection, error) {
	if s.byTitle == nil && s.titleErr == nil {
		return nil, domain.ErrNotFound
	}
	return s.byTitle, s.titleErr
}

func (s *stubRepo) Create(_ context.Context, c domain.Collection) (*domain.Collection, error) {
	s.createCalls++
	s.lastCreate = c
	return s.created, s.createErr
}

func (s *stubRepo) Update(_ context.Context, _ string, c domain.Collection) (*domain.Collection, error) {
	return s.updated, s.err
}

func (s *stubRepo) Delete(_ context.Context, _ string) error {
	s.deleteCalls++
	return s.deleteErr
}

func (s *stubRepo) AddProduct(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubRepo) RemoveProduct(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubRepo) RemoveProductFromAll(_ context.Context, _ string) error {
	return nil
}

type stubProductRepo struct {
	products       []domain.Product
	err            error
	removeAllErr   error
	removeAllCalls int
	lastRemoved    string
}

func (s *stubProductRepo) ListByIDs(_ context.Context, _ []string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductRepo) RemoveCollectionFromAll(_ context.Context, collectionID string) error {
	s.removeAllCalls++
	s.lastRemoved = collectionID
	return s.removeAllErr
}

func TestCreateValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{})

	for name, in := range map[string]Input{
		"missing title": {Image: "https://example.com/c.jpg"},
		"missing image": {Title: "Summer"},
		"blank title":   {Title: "   ", Image: "https://example.com/c.jpg"},
	} {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("%s: expected ErrMissingFields, got %v", name, err)
		}
	}
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	repo := &stubRepo{byTitle: &domain.Collection{ID: "c1", Title: "Summer"}}
	svc := New(repo, &stubProductRepo{})

	_, err := svc.Create(context.Background(), Input{Title: "Summer", Image: "https://example.com/c.jpg"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no insert for duplicate, got %d", repo.createCalls)
	}
}

func TestCreateHappyPath(t *testing.T) {
	repo := &stubRepo{created: &domain.Collection{ID: "c1", Title: "Summer"}}
	svc := New(repo, &stubProductRepo{})

	got, err := svc.Create(context.Background(), Input{Title: "Summer", Description: "d", Image: "https://example.com/c.jpg"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "c1" {
		t.Fatalf("unexpected collection: %+v", got)
	}
	if repo.lastCreate.Title != "Summer" || repo.lastCreate.Image != "https://example.com/c.jpg" {
		t.Fatalf("unexpected insert payload: %+v", repo.lastCreate)
	}
}

func TestGetPopulatesProducts(t *testing.T) {
	repo := &stubRepo{collection: &domain.Collection{ID: "c1", Products: []string{"p1"}}}
	products := &stubProductRepo{products: []domain.Product{{ID: "p1", Title: "Linen Shirt"}}}
	svc := New(repo, products)

	col, got, err := svc.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if col.ID != "c1" || len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected result: %+v %+v", col, got)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := New(&stubRepo{}, &stubProductRepo{})
	if _, _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRepairsProducts(t *testing.T) {
	repo := &stubRepo{}
	products := &stubProductRepo{}
	svc := New(repo, products)

	if err := svc.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if products.removeAllCalls != 1 || products.lastRemoved != "c1" {
		t.Fatalf("expected repair for c1, got calls=%d id=%q", products.removeAllCalls, products.lastRemoved)
	}
	if repo.deleteCalls != 1 {
		t.Fatalf("expected row delete after repair, got %d", repo.deleteCalls)
	}
}

func TestDeleteStopsWhenRepairFails(t *testing.T) {
	repo := &stubRepo{}
	products := &stubProductRepo{removeAllErr: errors.New("boom")}
	svc := New(repo, products)

	if err := svc.Delete(context.Background(), "c1"); err == nil {
		t.Fatal("expected repair error to surface")
	}
	if repo.deleteCalls != 0 {
		t.Fatalf("expected collection row to survive failed repair, got %d deletes", repo.deleteCalls)
	}
}

func TestDeleteRetryAfterPartialRun(t *testing.T) {
	// A retry after the row delete failed must repair again and still
	// surface the delete result, so repeated attempts converge.
	repo := &stubRepo{deleteErr: domain.ErrNotFound}
	products := &stubProductRepo{}
	svc := New(repo, products)

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if products.removeAllCalls != 1 {
		t.Fatalf("expected repair to run even for a missing row, got %d", products.removeAllCalls)
	}
}
