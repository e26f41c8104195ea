package shopRepo

import (
	"context"
	"errors"

	"randevu/models"
)

// ErrNotFound means the referenced shop does not exist.
var ErrNotFound = errors.New("shop not found")

// ShopRepository exposes the slice of the shop record the engine needs: the
// service catalog for price/duration resolution and the derived rating for
// the aggregator to write back.
type ShopRepository interface {
	GetByID(ctx context.Context, shopID string) (*models.Shop, error)
	UpdateRating(ctx context.Context, shopID string, rating models.ShopRating) error
}
