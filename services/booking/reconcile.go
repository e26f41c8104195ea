package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	availabilityRepo "randevu/database/repository/availability"
)

// ReconcileSlots repairs the reserved-but-orphaned degraded state: a booked
// slot with no active appointment behind it (a crash between reserve and
// insert, or a failed release on cancel). Such slots are released so
// customers can book them again.
func (s *DefaultBookingService) ReconcileSlots(ctx context.Context) (int, error) {
	today := time.Now().UTC().Format(dateLayout)
	horizon := time.Now().UTC().AddDate(0, 0, s.HorizonDays).Format(dateLayout)

	records, err := s.Availability.ListBookedInWindow(ctx, today, horizon)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, rec := range records {
		for _, t := range rec.BookedSlots {
			appt, err := s.Appointments.FindActiveBySlot(ctx, rec.ShopID, rec.StaffID, rec.Date, t)
			if err != nil {
				s.Logger.Warn("reconcile: appointment lookup failed",
					zap.String("shopId", rec.ShopID),
					zap.String("date", rec.Date),
					zap.String("time", t),
					zap.Error(err))
				continue
			}
			if appt != nil {
				continue
			}

			err = s.Availability.Release(ctx, rec.ShopID, rec.StaffID, rec.Date, t)
			if err != nil && !errors.Is(err, availabilityRepo.ErrNotBooked) {
				s.Logger.Warn("reconcile: failed to release orphaned slot",
					zap.String("shopId", rec.ShopID),
					zap.String("date", rec.Date),
					zap.String("time", t),
					zap.Error(err))
				continue
			}
			s.Logger.Info("reconcile: released orphaned slot",
				zap.String("shopId", rec.ShopID),
				zap.String("staffId", rec.StaffID),
				zap.String("date", rec.Date),
				zap.String("time", t))
			s.invalidateDayCache(ctx, rec.ShopID, rec.StaffID, rec.Date)
			released++
		}
	}
	return released, nil
}
