package reviewRepo

import (
	"context"
	"errors"

	"randevu/models"
)

var (
	// ErrNotFound means the referenced review does not exist.
	ErrNotFound = errors.New("review not found")
)

// ReviewRepository persists review records.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	// GetByUserAndAppointment enforces the one-review-per-appointment rule;
	// returns nil when no review exists.
	GetByUserAndAppointment(ctx context.Context, userID, appointmentID string) (*models.Review, error)
	// ListPublishedByShop returns the review set the rating is derived from.
	ListPublishedByShop(ctx context.Context, shopID string) ([]models.Review, error)
}
