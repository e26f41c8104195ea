package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"randevu/models"
)

var (
	// ErrNotFound means the referenced appointment does not exist.
	ErrNotFound = errors.New("appointment not found")
	// ErrStatusConflict means the appointment's status changed between the
	// caller's read and its write. The caller re-reads and re-evaluates.
	ErrStatusConflict = errors.New("appointment status changed concurrently")
)

// AppointmentRepository persists appointment records. Appointments are never
// physically deleted; cancellation is a status update.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// UpdateStatus persists a lifecycle transition. The write matches the
	// record only while it still holds fromStatus, so two racing transitions
	// serialize: the loser's write matches nothing and reports
	// ErrStatusConflict instead of overwriting the winner's state.
	UpdateStatus(ctx context.Context, appt *models.Appointment, fromStatus string) error
	// FindActiveBySlot returns the active (non-canceled, non-completed)
	// appointment holding the exact (shop, staff, date, time), or nil.
	FindActiveBySlot(ctx context.Context, shopID, staffID, date, timeSlot string) (*models.Appointment, error)
	// FindUserOverlapping returns the user's active appointments at the shop
	// whose [Date, EndTime) window overlaps [start, end).
	FindUserOverlapping(ctx context.Context, userID, shopID string, start, end time.Time) ([]models.Appointment, error)
	// FindStaffOverlapping returns active appointments for the staff member
	// whose window overlaps [start, end).
	FindStaffOverlapping(ctx context.Context, shopID, staffID string, start, end time.Time) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	ListByShopDay(ctx context.Context, shopID, date string) ([]models.Appointment, error)
	// ListConfirmedEndedBefore returns confirmed appointments whose end time
	// has passed, for the completion sweep.
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error)
}
