package booking

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	appointmentRepo "randevu/database/repository/appointment"
	availabilityRepo "randevu/database/repository/availability"
	shopRepo "randevu/database/repository/shop"
	"randevu/models"
	appointmentSvc "randevu/services/appointment"
	"randevu/services/notification"
)

// BookingService is the only entry point allowed to create an appointment
// tied to a slot, and the owner of the slot-release side effect of
// cancellation.
type BookingService interface {
	// Book validates capacity and atomically converts a free slot into a
	// booked slot plus a new appointment in pending_user_confirmation.
	Book(ctx context.Context, req models.BookRequest) (*models.Appointment, error)
	// Cancel runs the lifecycle transition and then releases the slot. A slot
	// that is already free (double-cancel) is tolerated.
	Cancel(ctx context.Context, appointmentID string, actor appointmentSvc.Actor, reason string) (*models.Appointment, error)
	// GetAvailableTimes returns the free times for a day, or an empty list if
	// the shop has not published that day.
	GetAvailableTimes(ctx context.Context, shopID, staffID, date string) ([]string, error)
	// Calendar returns the upcoming availability records used to render a
	// booking calendar.
	Calendar(ctx context.Context, shopID, staffID, fromDate string, days int) ([]models.AvailabilitySlot, error)
	// PublishSchedule bulk-generates the rolling availability window for one
	// staff member and returns the number of days written.
	PublishSchedule(ctx context.Context, shopID string, req models.PublishScheduleRequest) (int, error)
	// ReconcileSlots releases booked slots that no active appointment
	// references (the reserved-but-orphaned degraded state) and returns how
	// many were released.
	ReconcileSlots(ctx context.Context) (int, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Availability availabilityRepo.AvailabilityRepository
	Appointments appointmentRepo.AppointmentRepository
	Shops        shopRepo.ShopRepository
	Lifecycle    appointmentSvc.LifecycleService
	Notifier     notification.NotificationService
	Cache        *redis.Client
	Logger       *zap.Logger
	HorizonDays  int
}
