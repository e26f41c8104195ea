package models

import "time"

// AvailabilitySlot is the per-shop/per-staff/per-day record of bookable times.
// BookedSlots is always a subset of TimeSlots; a time string appears in
// BookedSlots only while an active appointment references it. Version guards
// concurrent reserve/release updates.
type AvailabilitySlot struct {
	ID          string    `bson:"id" json:"id"`
	ShopID      string    `bson:"shopId" json:"shopId"`
	StaffID     string    `bson:"staffId" json:"staffId"` // empty for unassigned-staff capacity
	Date        string    `bson:"date" json:"date"`       // "2006-01-02"
	TimeSlots   []string  `bson:"timeSlots" json:"timeSlots"`
	BookedSlots []string  `bson:"bookedSlots" json:"bookedSlots"`
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
	Version     int       `bson:"version" json:"version"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FreeSlots returns the times still open for booking, in published order.
func (a *AvailabilitySlot) FreeSlots() []string {
	if a == nil || !a.IsAvailable {
		return []string{}
	}
	booked := make(map[string]bool, len(a.BookedSlots))
	for _, t := range a.BookedSlots {
		booked[t] = true
	}
	free := make([]string, 0, len(a.TimeSlots))
	for _, t := range a.TimeSlots {
		if !booked[t] {
			free = append(free, t)
		}
	}
	return free
}

// HasTimeSlot reports whether t was ever published for this day.
func (a *AvailabilitySlot) HasTimeSlot(t string) bool {
	for _, s := range a.TimeSlots {
		if s == t {
			return true
		}
	}
	return false
}

// IsBooked reports whether t is currently reserved.
func (a *AvailabilitySlot) IsBooked(t string) bool {
	for _, s := range a.BookedSlots {
		if s == t {
			return true
		}
	}
	return false
}

// PublishScheduleRequest defines the payload for publishing a rolling
// availability window for one staff member.
type PublishScheduleRequest struct {
	StaffID         string   `json:"staffId"`
	StartDate       string   `json:"startDate" binding:"required"` // "2006-01-02"
	Days            int      `json:"days"`
	OpenTime        string   `json:"openTime" binding:"required"`  // "09:00"
	CloseTime       string   `json:"closeTime" binding:"required"` // "18:00"
	IntervalMinutes int      `json:"intervalMinutes"`
	ClosedWeekdays  []string `json:"closedWeekdays,omitempty"` // e.g. "Sunday"
}
