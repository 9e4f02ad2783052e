package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

// Reviews is the per-product rating store.
type Reviews struct {
	mu      sync.RWMutex
	kv      localstore.Store
	log     *slog.Logger
	reviews []domain.Review
	nextID  int64
}

func NewReviews(ctx context.Context, kv localstore.Store, log *slog.Logger) (*Reviews, error) {
	r := &Reviews{kv: kv, log: orDefault(log), nextID: 1}
	data, ok, err := kv.Get(ctx, keyReviews)
	if err != nil {
		return nil, err
	}
	if !ok {
		return r, nil
	}
	if err := json.Unmarshal(data, &r.reviews); err != nil {
		r.log.Error("discarding malformed review data", "key", keyReviews, "err", err)
		r.reviews = nil
		return r, nil
	}
	for _, rv := range r.reviews {
		if rv.ID >= r.nextID {
			r.nextID = rv.ID + 1
		}
	}
	return r, nil
}

// Add assigns an ID, stamps the time when unset, appends and persists.
func (r *Reviews) Add(ctx context.Context, review domain.Review) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = r.nextID
	r.nextID++
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	r.reviews = append(r.reviews, review)
	if err := persist(ctx, r.kv, keyReviews, r.reviews); err != nil {
		return nil, err
	}
	cp := review
	return &cp, nil
}

func (r *Reviews) ByProduct(productID int64) []domain.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Review, 0)
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out
}

// AverageForProduct returns the mean star rating rounded to the nearest
// whole star, or 0 when the product has no reviews.
func (r *Reviews) AverageForProduct(productID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum, n := 0, 0
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			sum += rv.Stars
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// HasUserReviewed reports whether the user already reviewed the product.
// The check is advisory: callers use it to block duplicate submissions.
func (r *Reviews) HasUserReviewed(productID, userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rv := range r.reviews {
		if rv.ProductID == productID && rv.UserID == userID {
			return true
		}
	}
	return false
}
