package service

import (
	"context"
	"errors"
	"testing"

	"ombela/internal/domain"
	"ombela/internal/localstore"
	"ombela/internal/repository"
)

func setupReviews(t *testing.T) (*ReviewService, *repository.Session) {
	t.Helper()
	ctx := context.Background()
	kv := localstore.NewMemory()
	catalog, err := repository.NewCatalog(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	reviews, err := repository.NewReviews(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new reviews: %v", err)
	}
	session, err := repository.NewSession(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewReviewService(reviews, catalog, session), session
}

func TestSubmit_RequiresLogin(t *testing.T) {
	rs, _ := setupReviews(t)
	if _, err := rs.Submit(context.Background(), 1, 5, "bom"); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSubmit_Validation(t *testing.T) {
	ctx := context.Background()
	rs, session := setupReviews(t)
	_ = session.Login(ctx, domain.User{ID: 10, Name: "Ana"})

	if _, err := rs.Submit(ctx, 1, 0, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for stars 0, got %v", err)
	}
	if _, err := rs.Submit(ctx, 1, 6, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for stars 6, got %v", err)
	}
	if _, err := rs.Submit(ctx, 999, 5, ""); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown product, got %v", err)
	}
}

func TestSubmit_OnePerUserAndProduct(t *testing.T) {
	ctx := context.Background()
	rs, session := setupReviews(t)
	_ = session.Login(ctx, domain.User{ID: 10, Name: "Ana"})

	review, err := rs.Submit(ctx, 1, 5, "excelente")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if review.UserID != 10 || review.UserName != "Ana" {
		t.Fatalf("review not attributed to the session user: %+v", review)
	}

	if _, err := rs.Submit(ctx, 1, 3, "mudei de ideia"); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed, got %v", err)
	}

	// another product is fine
	if _, err := rs.Submit(ctx, 2, 4, ""); err != nil {
		t.Fatalf("submit other product: %v", err)
	}

	// another user on the same product is fine
	_ = session.Login(ctx, domain.User{ID: 11, Name: "Bruno"})
	if _, err := rs.Submit(ctx, 1, 2, ""); err != nil {
		t.Fatalf("submit as other user: %v", err)
	}

	reviews, avg := rs.ForProduct(1)
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	// (5+2)/2 = 3.5 rounds to 4
	if avg != 4 {
		t.Fatalf("expected average 4, got %d", avg)
	}
}
