package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"randevu/models"
)

const defaultSlotInterval = 30 // minutes

// BuildTimeGrid generates the time-of-day strings for one working day: slot
// starts from openTime, every interval minutes, such that the whole slot fits
// before closeTime.
func BuildTimeGrid(openTime, closeTime string, intervalMinutes int) ([]string, error) {
	open, err := time.Parse(timeLayout, openTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad open time %q", ErrInvalidRequest, openTime)
	}
	close, err := time.Parse(timeLayout, closeTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad close time %q", ErrInvalidRequest, closeTime)
	}
	if intervalMinutes <= 0 {
		intervalMinutes = defaultSlotInterval
	}
	if !close.After(open) {
		return nil, fmt.Errorf("%w: close time %q is not after open time %q", ErrInvalidRequest, closeTime, openTime)
	}

	interval := time.Duration(intervalMinutes) * time.Minute
	var grid []string
	for t := open; !t.Add(interval).After(close); t = t.Add(interval) {
		grid = append(grid, t.Format(timeLayout))
	}
	return grid, nil
}

// PublishSchedule bulk-generates the rolling availability window for one
// staff member. Existing days keep their booked slots; only the published
// grid and the working flag are replaced.
func (s *DefaultBookingService) PublishSchedule(ctx context.Context, shopID string, req models.PublishScheduleRequest) (int, error) {
	if _, err := s.Shops.GetByID(ctx, shopID); err != nil {
		return 0, err
	}

	start, err := time.ParseInLocation(dateLayout, req.StartDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("%w: bad start date %q", ErrInvalidRequest, req.StartDate)
	}
	days := req.Days
	if days <= 0 || days > s.HorizonDays {
		days = s.HorizonDays
	}

	grid, err := BuildTimeGrid(req.OpenTime, req.CloseTime, req.IntervalMinutes)
	if err != nil {
		return 0, err
	}

	closed := make(map[string]bool, len(req.ClosedWeekdays))
	for _, wd := range req.ClosedWeekdays {
		closed[wd] = true
	}

	slots := make([]models.AvailabilitySlot, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		slots = append(slots, models.AvailabilitySlot{
			ShopID:      shopID,
			StaffID:     req.StaffID,
			Date:        day.Format(dateLayout),
			TimeSlots:   grid,
			IsAvailable: !closed[day.Weekday().String()],
		})
	}

	if err := s.Availability.UpsertDays(ctx, slots); err != nil {
		return 0, err
	}
	for _, slot := range slots {
		s.invalidateDayCache(ctx, shopID, req.StaffID, slot.Date)
	}

	s.Logger.Info("published availability window",
		zap.String("shopId", shopID),
		zap.String("staffId", req.StaffID),
		zap.String("startDate", req.StartDate),
		zap.Int("days", len(slots)))
	return len(slots), nil
}
