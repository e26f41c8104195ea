package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	reviewRepo "randevu/database/repository/review"
	"randevu/models"
)

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	review.ID = fmt.Sprintf("review-%d", r.nextID)
	review.CreatedAt = time.Now().UTC()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, reviewRepo.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (r *fakeReviewRepo) Update(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.ID]; !ok {
		return reviewRepo.ErrNotFound
	}
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return reviewRepo.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetByUserAndAppointment(ctx context.Context, userID, appointmentID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.UserID == userID && review.AppointmentID == appointmentID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) ListPublishedByShop(ctx context.Context, shopID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.reviews {
		if review.ShopID == shopID && review.IsPublished {
			out = append(out, *review)
		}
	}
	return out, nil
}

// fakeAppointmentLookup serves only GetByID; the review service never calls
// the other repository methods.
type fakeAppointmentLookup struct {
	appts map[string]*models.Appointment
}

func (f *fakeAppointmentLookup) Create(ctx context.Context, appt *models.Appointment) error {
	return nil
}

func (f *fakeAppointmentLookup) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	return appt, nil
}

func (f *fakeAppointmentLookup) UpdateStatus(ctx context.Context, appt *models.Appointment, fromStatus string) error {
	return nil
}

func (f *fakeAppointmentLookup) FindActiveBySlot(ctx context.Context, shopID, staffID, date, timeSlot string) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentLookup) FindUserOverlapping(ctx context.Context, userID, shopID string, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentLookup) FindStaffOverlapping(ctx context.Context, shopID, staffID string, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentLookup) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentLookup) ListByShopDay(ctx context.Context, shopID, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentLookup) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	return nil, nil
}

// recordingAggregator signals each recompute so tests can wait for the
// asynchronous trigger.
type recordingAggregator struct {
	recomputed chan string
}

func (a *recordingAggregator) Recompute(ctx context.Context, shopID string) (*models.ShopRating, error) {
	a.recomputed <- shopID
	return &models.ShopRating{}, nil
}

func newTestService() (*DefaultReviewService, *fakeReviewRepo, *recordingAggregator) {
	reviews := newFakeReviewRepo()
	agg := &recordingAggregator{recomputed: make(chan string, 4)}
	appts := &fakeAppointmentLookup{appts: map[string]*models.Appointment{
		"appt-1": {
			ID:     "appt-1",
			UserID: "user-1",
			ShopID: "shop-1",
			Status: models.StatusCompleted,
		},
	}}
	svc := &DefaultReviewService{
		Reviews:      reviews,
		Appointments: appts,
		Aggregator:   agg,
		Logger:       zap.NewNop(),
	}
	return svc, reviews, agg
}

func waitForRecompute(t *testing.T, agg *recordingAggregator, wantShop string) {
	t.Helper()
	select {
	case shopID := <-agg.recomputed:
		if shopID != wantShop {
			t.Errorf("expected recompute for %q, got %q", wantShop, shopID)
		}
	case <-time.After(2 * time.Second):
		t.Error("expected a rating recompute to be triggered")
	}
}

func TestSubmitTriggersRecompute(t *testing.T) {
	svc, _, agg := newTestService()

	review, err := svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
		ShopID:        "shop-1",
		AppointmentID: "appt-1",
		Rating:        5,
		Comment:       "great cut",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ID == "" || !review.IsPublished {
		t.Errorf("expected a published review with an ID, got %+v", review)
	}
	waitForRecompute(t, agg, "shop-1")
}

func TestSubmitRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _ := newTestService()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
			ShopID: "shop-1",
			Rating: rating,
		})
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestSubmitRequiresAppointmentOwnership(t *testing.T) {
	svc, _, _ := newTestService()

	// Not the appointment's user.
	_, err := svc.Submit(context.Background(), "user-2", models.SubmitReviewRequest{
		ShopID:        "shop-1",
		AppointmentID: "appt-1",
		Rating:        4,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign appointment, got %v", err)
	}

	// Appointment belongs to a different shop than the one being reviewed.
	_, err = svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
		ShopID:        "shop-2",
		AppointmentID: "appt-1",
		Rating:        4,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for shop mismatch, got %v", err)
	}
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	svc, _, agg := newTestService()

	if _, err := svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
		ShopID:        "shop-1",
		AppointmentID: "appt-1",
		Rating:        5,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForRecompute(t, agg, "shop-1")

	_, err := svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
		ShopID:        "shop-1",
		AppointmentID: "appt-1",
		Rating:        1,
	})
	if !errors.Is(err, ErrDuplicateReview) {
		t.Errorf("expected ErrDuplicateReview, got %v", err)
	}
}

func TestUpdateRequiresOwner(t *testing.T) {
	svc, _, agg := newTestService()

	review, err := svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
		ShopID: "shop-1",
		Rating: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForRecompute(t, agg, "shop-1")

	if _, err := svc.Update(context.Background(), "user-2", review.ID, models.UpdateReviewRequest{Rating: 1}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	updated, err := svc.Update(context.Background(), "user-1", review.ID, models.UpdateReviewRequest{Rating: 3, Comment: "revised"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Rating != 3 || updated.Comment != "revised" {
		t.Errorf("expected updated fields, got %+v", updated)
	}
	waitForRecompute(t, agg, "shop-1")
}

func TestDeleteTriggersRecompute(t *testing.T) {
	svc, reviews, agg := newTestService()

	review, err := svc.Submit(context.Background(), "user-1", models.SubmitReviewRequest{
		ShopID: "shop-1",
		Rating: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForRecompute(t, agg, "shop-1")

	if err := svc.Delete(context.Background(), "user-2", review.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	if err := svc.Delete(context.Background(), "user-1", review.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitForRecompute(t, agg, "shop-1")

	if _, err := reviews.GetByID(context.Background(), review.ID); !errors.Is(err, reviewRepo.ErrNotFound) {
		t.Errorf("expected review to be gone, got %v", err)
	}
}
