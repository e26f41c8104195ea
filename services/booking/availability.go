package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"randevu/models"
)

// availableTimesTTL keeps the calendar snappy without letting a stale cache
// show a taken slot for long. Reserve/release also invalidate eagerly.
const availableTimesTTL = 30 * time.Second

func dayCacheKey(shopID, staffID, date string) string {
	return fmt.Sprintf("avail:%s:%s:%s", shopID, staffID, date)
}

func (s *DefaultBookingService) GetAvailableTimes(ctx context.Context, shopID, staffID, date string) ([]string, error) {
	if _, err := time.ParseInLocation(dateLayout, date, time.UTC); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	key := dayCacheKey(shopID, staffID, date)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var times []string
			if err := json.Unmarshal([]byte(cached), &times); err == nil {
				return times, nil
			}
		}
	}

	day, err := s.Availability.GetByDay(ctx, shopID, staffID, date)
	if err != nil {
		return nil, err
	}
	// Unpublished day: nothing bookable, not an error.
	free := day.FreeSlots()

	if s.Cache != nil {
		if payload, err := json.Marshal(free); err == nil {
			if err := s.Cache.Set(ctx, key, payload, availableTimesTTL).Err(); err != nil {
				s.Logger.Debug("failed to cache available times", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return free, nil
}

func (s *DefaultBookingService) Calendar(ctx context.Context, shopID, staffID, fromDate string, days int) ([]models.AvailabilitySlot, error) {
	if _, err := time.ParseInLocation(dateLayout, fromDate, time.UTC); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if days <= 0 || days > s.HorizonDays {
		days = s.HorizonDays
	}
	return s.Availability.ListUpcoming(ctx, shopID, staffID, fromDate, days)
}

func (s *DefaultBookingService) invalidateDayCache(ctx context.Context, shopID, staffID, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, dayCacheKey(shopID, staffID, date)).Err(); err != nil {
		s.Logger.Debug("failed to invalidate availability cache",
			zap.String("shopId", shopID), zap.String("date", date), zap.Error(err))
	}
}
