package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	availabilityRepo "randevu/database/repository/availability"
	"randevu/models"
	appointmentSvc "randevu/services/appointment"
	"randevu/services/notification"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// composeStart builds the appointment start instant from the request's day
// and time-of-day strings. All appointment instants live in UTC.
func composeStart(date, timeSlot string) (time.Time, error) {
	start, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+timeSlot, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return start, nil
}

func (s *DefaultBookingService) Book(ctx context.Context, req models.BookRequest) (*models.Appointment, error) {
	start, err := composeStart(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	// Resolve the service for duration and price.
	shop, err := s.Shops.GetByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	svc := shop.ServiceByID(req.ServiceID)
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	// The requester must not already hold an overlapping appointment here,
	// and neither may the staff member.
	conflicts, err := s.Appointments.FindUserOverlapping(ctx, req.UserID, req.ShopID, start, end)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrUserConflict
	}
	if req.StaffID != "" {
		busy, err := s.Appointments.FindStaffOverlapping(ctx, req.ShopID, req.StaffID, start, end)
		if err != nil {
			return nil, err
		}
		if len(busy) > 0 {
			return nil, ErrStaffConflict
		}
	}

	// Reserve the slot; exactly one concurrent caller wins.
	err = s.Availability.Reserve(ctx, req.ShopID, req.StaffID, req.Date, req.Time)
	switch {
	case errors.Is(err, availabilityRepo.ErrAlreadyBooked):
		return nil, ErrSlotTaken
	case errors.Is(err, availabilityRepo.ErrNoSuchSlot):
		return nil, ErrNotBookable
	case err != nil:
		return nil, err
	}

	appt := &models.Appointment{
		UserID:    req.UserID,
		ShopID:    req.ShopID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      start,
		TimeSlot:  req.Time,
		EndTime:   end,
		Price:     svc.Price,
		Notes:     req.Notes,
		Status:    models.StatusPendingUserConfirmation,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		// The slot is now reserved with no appointment behind it. That is a
		// known degraded state: log it and let the reconciliation sweep
		// release the slot, rather than exposing a half-booked appointment.
		s.Logger.Error("appointment insert failed after slot reservation; slot left for reconciliation",
			zap.String("shopId", req.ShopID),
			zap.String("staffId", req.StaffID),
			zap.String("date", req.Date),
			zap.String("time", req.Time),
			zap.Error(err))
		return nil, fmt.Errorf("failed to persist appointment: %w", err)
	}

	s.invalidateDayCache(ctx, req.ShopID, req.StaffID, req.Date)
	s.notifyAsync(notification.EventCreated, appt)
	return appt, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID string, actor appointmentSvc.Actor, reason string) (*models.Appointment, error) {
	appt, err := s.Lifecycle.Cancel(ctx, appointmentID, actor, reason)
	if err != nil {
		return nil, err
	}

	releaseErr := s.Availability.Release(ctx, appt.ShopID, appt.StaffID, appt.DateKey(), appt.TimeSlot)
	if releaseErr != nil {
		if errors.Is(releaseErr, availabilityRepo.ErrNotBooked) {
			// Already released, e.g. a racing double-cancel. Tolerated.
			s.Logger.Debug("slot already released on cancel",
				zap.String("appointmentId", appt.ID))
		} else {
			// The appointment is canceled but the slot is still held; the
			// reconciliation sweep repairs this.
			s.Logger.Error("failed to release slot after cancel; slot left for reconciliation",
				zap.String("appointmentId", appt.ID),
				zap.Error(releaseErr))
		}
	}

	s.invalidateDayCache(ctx, appt.ShopID, appt.StaffID, appt.DateKey())
	return appt, nil
}

// notifyAsync emits a customer-facing event without blocking the booking.
func (s *DefaultBookingService) notifyAsync(event string, appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	a := *appt
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifier.NotifyAppointmentEvent(ctx, event, &a); err != nil {
			s.Logger.Warn("failed to deliver booking notification",
				zap.String("event", event),
				zap.String("appointmentId", a.ID),
				zap.Error(err))
		}
	}()
}
