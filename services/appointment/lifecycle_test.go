package appointment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	"randevu/models"
)

// fakeApptRepo is an in-memory AppointmentRepository for exercising the state
// machine without a database. statusWrites records every successful
// transition write so tests can assert how many landed.
type fakeApptRepo struct {
	mu           sync.Mutex
	appts        map[string]*models.Appointment
	statusWrites []string
}

func newFakeApptRepo(appts ...*models.Appointment) *fakeApptRepo {
	r := &fakeApptRepo{appts: make(map[string]*models.Appointment)}
	for _, a := range appts {
		copied := *a
		r.appts[a.ID] = &copied
	}
	return r
}

func (r *fakeApptRepo) Create(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *appt
	r.appts[appt.ID] = &copied
	return nil
}

func (r *fakeApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeApptRepo) UpdateStatus(ctx context.Context, appt *models.Appointment, fromStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appts[appt.ID]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if stored.Status != fromStatus {
		return appointmentRepo.ErrStatusConflict
	}
	copied := *appt
	r.appts[appt.ID] = &copied
	r.statusWrites = append(r.statusWrites, appt.Status)
	return nil
}

func (r *fakeApptRepo) FindActiveBySlot(ctx context.Context, shopID, staffID, date, timeSlot string) (*models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) FindUserOverlapping(ctx context.Context, userID, shopID string, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) FindStaffOverlapping(ctx context.Context, shopID, staffID string, start, end time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByShopDay(ctx context.Context, shopID, date string) ([]models.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	return nil, nil
}

func newTestAppt(status string) *models.Appointment {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	return &models.Appointment{
		ID:       "appt-1",
		UserID:   "user-1",
		ShopID:   "shop-1",
		Date:     start,
		TimeSlot: "10:00",
		EndTime:  start.Add(30 * time.Minute),
		Status:   status,
	}
}

func newLifecycle(repo appointmentRepo.AppointmentRepository) *DefaultLifecycleService {
	return &DefaultLifecycleService{Repo: repo, Logger: zap.NewNop()}
}

func TestConfirmAsUser(t *testing.T) {
	svc := newLifecycle(newFakeApptRepo(newTestAppt(models.StatusPendingUserConfirmation)))

	got, err := svc.ConfirmAsUser(context.Background(), "appt-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusPendingBusinessConfirmation {
		t.Errorf("expected status %q, got %q", models.StatusPendingBusinessConfirmation, got.Status)
	}
	if !got.UserConfirmed {
		t.Error("expected UserConfirmed to be set")
	}
}

func TestConfirmAsUserWrongUser(t *testing.T) {
	svc := newLifecycle(newFakeApptRepo(newTestAppt(models.StatusPendingUserConfirmation)))

	if _, err := svc.ConfirmAsUser(context.Background(), "appt-1", "someone-else"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestConfirmAsUserIdempotent(t *testing.T) {
	// A second click on the confirmation link after the business already
	// confirmed must succeed without changing anything.
	appt := newTestAppt(models.StatusConfirmed)
	appt.UserConfirmed = true
	appt.BusinessConfirmed = true
	svc := newLifecycle(newFakeApptRepo(appt))

	got, err := svc.ConfirmAsUser(context.Background(), "appt-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusConfirmed {
		t.Errorf("expected status unchanged, got %q", got.Status)
	}
}

func TestConfirmAsUserFromCanceled(t *testing.T) {
	svc := newLifecycle(newFakeApptRepo(newTestAppt(models.StatusCanceled)))

	_, err := svc.ConfirmAsUser(context.Background(), "appt-1", "user-1")
	var transition *InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if transition.From != models.StatusCanceled {
		t.Errorf("expected From %q, got %q", models.StatusCanceled, transition.From)
	}
}

func TestConfirmAsBusiness(t *testing.T) {
	appt := newTestAppt(models.StatusPendingBusinessConfirmation)
	appt.UserConfirmed = true
	svc := newLifecycle(newFakeApptRepo(appt))

	got, err := svc.ConfirmAsBusiness(context.Background(), "appt-1", "shop-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusConfirmed {
		t.Errorf("expected status %q, got %q", models.StatusConfirmed, got.Status)
	}
	if !got.BusinessConfirmed {
		t.Error("expected BusinessConfirmed to be set")
	}
}

func TestConfirmAsBusinessCannotSkipUserStep(t *testing.T) {
	svc := newLifecycle(newFakeApptRepo(newTestAppt(models.StatusPendingUserConfirmation)))

	_, err := svc.ConfirmAsBusiness(context.Background(), "appt-1", "shop-1")
	var transition *InvalidTransitionError
	if !errors.As(err, &transition) {
		t.Errorf("expected InvalidTransitionError, got %v", err)
	}
}

func TestMarkCompleted(t *testing.T) {
	appt := newTestAppt(models.StatusConfirmed)
	appt.EndTime = time.Now().UTC().Add(-time.Hour)
	svc := newLifecycle(newFakeApptRepo(appt))

	got, err := svc.MarkCompleted(context.Background(), "appt-1", Actor{ShopID: "shop-1"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("expected status %q, got %q", models.StatusCompleted, got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("expected CompletedAt to be set")
	}
}

func TestMarkCompletedBeforeEndTime(t *testing.T) {
	appt := newTestAppt(models.StatusConfirmed)
	appt.EndTime = time.Now().UTC().Add(time.Hour)
	svc := newLifecycle(newFakeApptRepo(appt))

	if _, err := svc.MarkCompleted(context.Background(), "appt-1", Actor{ShopID: "shop-1"}, false); !errors.Is(err, ErrNotElapsed) {
		t.Errorf("expected ErrNotElapsed, got %v", err)
	}

	// force bypasses the elapsed-time gate.
	got, err := svc.MarkCompleted(context.Background(), "appt-1", Actor{ShopID: "shop-1"}, true)
	if err != nil {
		t.Fatalf("unexpected error with force: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("expected status %q, got %q", models.StatusCompleted, got.Status)
	}
}

func TestMarkCompletedRequiresShopOrSystem(t *testing.T) {
	appt := newTestAppt(models.StatusConfirmed)
	appt.EndTime = time.Now().UTC().Add(-time.Hour)
	repo := newFakeApptRepo(appt)
	svc := newLifecycle(repo)

	if _, err := svc.MarkCompleted(context.Background(), "appt-1", Actor{ShopID: "other-shop"}, false); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	got, err := svc.MarkCompleted(context.Background(), "appt-1", Actor{System: true}, false)
	if err != nil {
		t.Fatalf("unexpected error for system actor: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("expected status %q, got %q", models.StatusCompleted, got.Status)
	}
}

func TestMarkCompletedOnlyFromConfirmed(t *testing.T) {
	for _, status := range []string{
		models.StatusPendingUserConfirmation,
		models.StatusPendingBusinessConfirmation,
		models.StatusCanceled,
		models.StatusCompleted,
	} {
		svc := newLifecycle(newFakeApptRepo(newTestAppt(status)))
		_, err := svc.MarkCompleted(context.Background(), "appt-1", Actor{System: true}, true)
		var transition *InvalidTransitionError
		if !errors.As(err, &transition) {
			t.Errorf("status %q: expected InvalidTransitionError, got %v", status, err)
		}
	}
}

func TestCancelFromActiveStatuses(t *testing.T) {
	for _, status := range models.ActiveStatuses {
		svc := newLifecycle(newFakeApptRepo(newTestAppt(status)))

		got, err := svc.Cancel(context.Background(), "appt-1", Actor{UserID: "user-1"}, "schedule conflict")
		if err != nil {
			t.Fatalf("status %q: unexpected error: %v", status, err)
		}
		if got.Status != models.StatusCanceled {
			t.Errorf("status %q: expected canceled, got %q", status, got.Status)
		}
		if got.CancelReason != "schedule conflict" || got.CanceledAt == nil {
			t.Errorf("status %q: expected cancel metadata, got %+v", status, got)
		}
	}
}

func TestCancelTerminalStatuses(t *testing.T) {
	for _, status := range []string{models.StatusCompleted, models.StatusCanceled} {
		svc := newLifecycle(newFakeApptRepo(newTestAppt(status)))
		_, err := svc.Cancel(context.Background(), "appt-1", Actor{UserID: "user-1"}, "")
		var transition *InvalidTransitionError
		if !errors.As(err, &transition) {
			t.Errorf("status %q: expected InvalidTransitionError, got %v", status, err)
		}
	}
}

func TestCancelRequiresOwner(t *testing.T) {
	svc := newLifecycle(newFakeApptRepo(newTestAppt(models.StatusConfirmed)))

	if _, err := svc.Cancel(context.Background(), "appt-1", Actor{UserID: "intruder"}, ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// The shop side may cancel too.
	if _, err := svc.Cancel(context.Background(), "appt-1", Actor{ShopID: "shop-1"}, "staff sick"); err != nil {
		t.Errorf("unexpected error for shop actor: %v", err)
	}
}

// barrierRepo holds the first two readers until both have their snapshot, so
// two transitions are guaranteed to evaluate the same stale state before
// either writes. Later reads (the loser's retry) pass straight through.
type barrierRepo struct {
	*fakeApptRepo
	gate  sync.WaitGroup
	reads int32
}

func (r *barrierRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := r.fakeApptRepo.GetByID(ctx, id)
	if atomic.AddInt32(&r.reads, 1) <= 2 {
		r.gate.Done()
	}
	r.gate.Wait()
	return appt, err
}

func TestRacingCancelAndCompleteSerialize(t *testing.T) {
	appt := newTestAppt(models.StatusConfirmed)
	appt.EndTime = time.Now().UTC().Add(-time.Hour)
	inner := newFakeApptRepo(appt)
	repo := &barrierRepo{fakeApptRepo: inner}
	repo.gate.Add(2)
	svc := newLifecycle(repo)

	var wg sync.WaitGroup
	var cancelErr, completeErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, cancelErr = svc.Cancel(context.Background(), "appt-1", Actor{UserID: "user-1"}, "cannot make it")
	}()
	go func() {
		defer wg.Done()
		_, completeErr = svc.MarkCompleted(context.Background(), "appt-1", Actor{System: true}, false)
	}()
	wg.Wait()

	final, err := inner.GetByID(context.Background(), "appt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly one transition may land; the loser re-reads the terminal state
	// and rejects instead of overwriting it.
	if len(inner.statusWrites) != 1 {
		t.Fatalf("expected exactly one status write, got %v", inner.statusWrites)
	}
	if final.Status != inner.statusWrites[0] {
		t.Errorf("final status %q does not match the winning write %q", final.Status, inner.statusWrites[0])
	}

	var transition *InvalidTransitionError
	switch final.Status {
	case models.StatusCanceled:
		if cancelErr != nil {
			t.Errorf("winner cancel returned error: %v", cancelErr)
		}
		if !errors.As(completeErr, &transition) {
			t.Errorf("expected InvalidTransitionError for losing complete, got %v", completeErr)
		}
	case models.StatusCompleted:
		if completeErr != nil {
			t.Errorf("winner complete returned error: %v", completeErr)
		}
		if !errors.As(cancelErr, &transition) {
			t.Errorf("expected InvalidTransitionError for losing cancel, got %v", cancelErr)
		}
	default:
		t.Fatalf("expected a terminal status, got %q", final.Status)
	}
}
