package review

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	reviewRepo "randevu/database/repository/review"
	"randevu/models"
	"randevu/services/rating"
)

var (
	// ErrInvalidRating rejects ratings outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrDuplicateReview enforces one review per (user, appointment).
	ErrDuplicateReview = errors.New("appointment has already been reviewed")
	// ErrUnauthorized means the actor does not own the review or appointment.
	ErrUnauthorized = errors.New("actor does not own this review")
)

// ReviewService owns review writes. Every successful write triggers a rating
// recompute for the shop; the recompute never blocks or fails the write.
type ReviewService interface {
	Submit(ctx context.Context, userID string, req models.SubmitReviewRequest) (*models.Review, error)
	Update(ctx context.Context, userID, reviewID string, req models.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, userID, reviewID string) error
	ListByShop(ctx context.Context, shopID string) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Reviews      reviewRepo.ReviewRepository
	Appointments appointmentRepo.AppointmentRepository
	Queue        *asynq.Client
	Aggregator   rating.Aggregator
	Logger       *zap.Logger
}

func (s *DefaultReviewService) Submit(ctx context.Context, userID string, req models.SubmitReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if req.AppointmentID != "" {
		appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appt.UserID != userID || appt.ShopID != req.ShopID {
			return nil, ErrUnauthorized
		}
		existing, err := s.Reviews.GetByUserAndAppointment(ctx, userID, req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateReview
		}
	}

	review := &models.Review{
		ShopID:        req.ShopID,
		UserID:        userID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		IsPublished:   true,
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.triggerRecompute(review.ShopID)
	return review, nil
}

func (s *DefaultReviewService) Update(ctx context.Context, userID, reviewID string, req models.UpdateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrUnauthorized
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := s.Reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	s.triggerRecompute(review.ShopID)
	return review, nil
}

func (s *DefaultReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrUnauthorized
	}

	if err := s.Reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.triggerRecompute(review.ShopID)
	return nil
}

func (s *DefaultReviewService) ListByShop(ctx context.Context, shopID string) ([]models.Review, error) {
	return s.Reviews.ListPublishedByShop(ctx, shopID)
}

// triggerRecompute enqueues the rating recompute; asynq retries it on
// failure. If the queue itself is unreachable we fall back to a direct
// recompute so the displayed rating still converges, and in no case does the
// review write fail.
func (s *DefaultReviewService) triggerRecompute(shopID string) {
	if s.Queue != nil {
		task, err := rating.NewRecomputeTask(shopID)
		if err == nil {
			if _, err := s.Queue.Enqueue(task, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)); err == nil {
				return
			}
			s.Logger.Warn("failed to enqueue rating recompute, running inline",
				zap.String("shopId", shopID))
		}
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := s.Aggregator.Recompute(ctx, shopID); err != nil {
			s.Logger.Error("inline rating recompute failed",
				zap.String("shopId", shopID), zap.Error(err))
		}
	}()
}
