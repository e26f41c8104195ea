package appointment

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	"randevu/models"
	"randevu/services/notification"
)

// ErrUnauthorized means the actor does not own the appointment being mutated.
var ErrUnauthorized = errors.New("actor does not own this appointment")

// ErrNotElapsed means completion was attempted before the appointment's end
// time has passed.
var ErrNotElapsed = errors.New("appointment has not finished yet")

// InvalidTransitionError rejects a lifecycle transition that is not permitted
// from the appointment's current status. It carries both states for
// diagnostics; it signals a stale client view, not a fatal failure.
type InvalidTransitionError struct {
	From      string
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot move appointment from %q to %q", e.From, e.Attempted)
}

// Actor identifies who is invoking a transition. Exactly one of UserID or
// ShopID is set for client calls; System marks internal sweeps.
type Actor struct {
	UserID string
	ShopID string
	System bool
}

// LifecycleService is the appointment state machine. It owns status
// transitions only; the slot-release side effect of cancellation belongs to
// the booking service so the two concerns stay independently testable.
type LifecycleService interface {
	// ConfirmAsUser moves pending_user_confirmation to
	// pending_business_confirmation. Re-invocation on an already-confirmed
	// appointment is a no-op success, so duplicate confirmation-link clicks
	// are harmless.
	ConfirmAsUser(ctx context.Context, appointmentID, userID string) (*models.Appointment, error)
	// ConfirmAsBusiness moves pending_business_confirmation to confirmed.
	ConfirmAsBusiness(ctx context.Context, appointmentID, shopID string) (*models.Appointment, error)
	// MarkCompleted moves confirmed to completed. Unless force is set, the
	// appointment's end time must have passed.
	MarkCompleted(ctx context.Context, appointmentID string, actor Actor, force bool) (*models.Appointment, error)
	// Cancel moves any non-terminal status to canceled. It does not release
	// the slot.
	Cancel(ctx context.Context, appointmentID string, actor Actor, reason string) (*models.Appointment, error)
}

// DefaultLifecycleService implements LifecycleService.
type DefaultLifecycleService struct {
	Repo     appointmentRepo.AppointmentRepository
	Notifier notification.NotificationService
	Logger   *zap.Logger
}
