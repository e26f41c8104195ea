package rating

import (
	"context"

	"go.uber.org/zap"

	reviewRepo "randevu/database/repository/review"
	shopRepo "randevu/database/repository/shop"
	"randevu/models"
)

// Aggregator derives a shop's public rating from its published reviews. The
// computation is a pure function of the current review set; Recompute runs on
// every review create/update/delete so the displayed rating never drifts.
type Aggregator interface {
	Recompute(ctx context.Context, shopID string) (*models.ShopRating, error)
}

// DefaultAggregator implements Aggregator against the review and shop
// repositories.
type DefaultAggregator struct {
	Reviews reviewRepo.ReviewRepository
	Shops   shopRepo.ShopRepository
	Logger  *zap.Logger
}

func NewDefaultAggregator(reviews reviewRepo.ReviewRepository, shops shopRepo.ShopRepository, logger *zap.Logger) *DefaultAggregator {
	return &DefaultAggregator{Reviews: reviews, Shops: shops, Logger: logger}
}

func (a *DefaultAggregator) Recompute(ctx context.Context, shopID string) (*models.ShopRating, error) {
	reviews, err := a.Reviews.ListPublishedByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	rating := Compute(reviews)
	if err := a.Shops.UpdateRating(ctx, shopID, rating); err != nil {
		return nil, err
	}

	a.Logger.Debug("recomputed shop rating",
		zap.String("shopId", shopID),
		zap.Float64("average", rating.Average),
		zap.Int("count", rating.Count))
	return &rating, nil
}
