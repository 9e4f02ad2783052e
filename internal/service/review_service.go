package service

import (
	"context"
	"errors"

	"ombela/internal/domain"
	"ombela/internal/repository"
)

// ReviewService gates review submission: one review per user and product,
// stars within 1-5, product must exist, user must be logged in.
type ReviewService struct {
	reviews *repository.Reviews
	catalog *repository.Catalog
	session *repository.Session
}

func NewReviewService(reviews *repository.Reviews, catalog *repository.Catalog, session *repository.Session) *ReviewService {
	return &ReviewService{reviews: reviews, catalog: catalog, session: session}
}

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
)

func (s *ReviewService) Submit(ctx context.Context, productID int64, stars int, comment string) (*domain.Review, error) {
	user := s.session.Current()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	if productID <= 0 || stars < 1 || stars > 5 {
		return nil, ErrInvalidInput
	}
	if _, err := s.catalog.ByID(productID); err != nil {
		return nil, err
	}
	if s.reviews.HasUserReviewed(productID, user.ID) {
		return nil, ErrAlreadyReviewed
	}
	return s.reviews.Add(ctx, domain.Review{
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		Stars:     stars,
		Comment:   comment,
	})
}

// ForProduct returns the product's reviews and its average star rating
// rounded to the nearest whole star.
func (s *ReviewService) ForProduct(productID int64) ([]domain.Review, int) {
	return s.reviews.ByProduct(productID), s.reviews.AverageForProduct(productID)
}
