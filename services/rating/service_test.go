package rating

import (
	"context"
	"testing"

	"go.uber.org/zap"

	shopRepo "randevu/database/repository/shop"
	"randevu/models"
)

type stubReviewLister struct {
	reviews []models.Review
}

func (s *stubReviewLister) Create(ctx context.Context, review *models.Review) error  { return nil }
func (s *stubReviewLister) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return nil, nil
}
func (s *stubReviewLister) Update(ctx context.Context, review *models.Review) error { return nil }
func (s *stubReviewLister) Delete(ctx context.Context, id string) error             { return nil }
func (s *stubReviewLister) GetByUserAndAppointment(ctx context.Context, userID, appointmentID string) (*models.Review, error) {
	return nil, nil
}
func (s *stubReviewLister) ListPublishedByShop(ctx context.Context, shopID string) ([]models.Review, error) {
	return s.reviews, nil
}

type stubShopWriter struct {
	shopID string
	rating models.ShopRating
}

func (s *stubShopWriter) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	return nil, shopRepo.ErrNotFound
}

func (s *stubShopWriter) UpdateRating(ctx context.Context, shopID string, rating models.ShopRating) error {
	s.shopID = shopID
	s.rating = rating
	return nil
}

func TestRecomputeWritesDerivedRating(t *testing.T) {
	reviews := &stubReviewLister{reviews: []models.Review{
		{Rating: 5, IsPublished: true},
		{Rating: 5, IsPublished: true},
		{Rating: 5, IsPublished: true},
		{Rating: 2, IsPublished: true},
	}}
	shops := &stubShopWriter{}
	agg := NewDefaultAggregator(reviews, shops, zap.NewNop())

	got, err := agg.Recompute(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Average != 3.9 || got.Count != 4 {
		t.Errorf("expected {3.9 4}, got %+v", got)
	}
	if shops.shopID != "shop-1" {
		t.Errorf("expected rating written for shop-1, got %q", shops.shopID)
	}
	if shops.rating.Average != 3.9 {
		t.Errorf("expected persisted average 3.9, got %v", shops.rating.Average)
	}
}

func TestRecomputeZeroReviewsResetsRating(t *testing.T) {
	shops := &stubShopWriter{}
	agg := NewDefaultAggregator(&stubReviewLister{}, shops, zap.NewNop())

	got, err := agg.Recompute(context.Background(), "shop-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Average != 0 || got.Count != 0 {
		t.Errorf("expected zero rating, got %+v", got)
	}
}
