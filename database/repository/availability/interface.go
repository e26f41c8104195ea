package availabilityRepo

import (
	"context"
	"errors"

	"randevu/models"
)

// Expected reserve/release outcomes. These are contention and validation
// results, not infrastructure failures; callers branch on them.
var (
	// ErrAlreadyBooked means another booking holds the slot.
	ErrAlreadyBooked = errors.New("time slot is already booked")
	// ErrNoSuchSlot means the day or time was never published as bookable.
	ErrNoSuchSlot = errors.New("time slot is not bookable")
	// ErrNotBooked means a release targeted a slot that is already free.
	ErrNotBooked = errors.New("time slot is not booked")
)

// AvailabilityRepository is the durable record of slot capacity and occupancy.
// Reserve and Release are the only operations in the engine requiring true
// mutual exclusion; implementations must serialize them per slot record so
// concurrent reservations of the same time yield exactly one winner.
type AvailabilityRepository interface {
	// GetByDay returns the record for the exact (shop, staff, day), or nil if
	// the business has not published availability for that day. A nil record
	// means "nothing bookable", not an error.
	GetByDay(ctx context.Context, shopID, staffID, date string) (*models.AvailabilitySlot, error)
	// ListUpcoming returns at most horizonDays records from fromDate onward,
	// ordered by date.
	ListUpcoming(ctx context.Context, shopID, staffID, fromDate string, horizonDays int) ([]models.AvailabilitySlot, error)
	// Reserve moves timeSlot from free to booked, or reports ErrAlreadyBooked
	// or ErrNoSuchSlot.
	Reserve(ctx context.Context, shopID, staffID, date, timeSlot string) error
	// Release frees a booked timeSlot; releasing an already-free slot reports
	// ErrNotBooked rather than corrupting state.
	Release(ctx context.Context, shopID, staffID, date, timeSlot string) error
	// UpsertDays publishes (or regenerates) daily records, preserving booked
	// slots on days that already exist.
	UpsertDays(ctx context.Context, slots []models.AvailabilitySlot) error
	// ListBookedInWindow returns records within [fromDate, toDate] that have
	// at least one booked slot, for the reconciliation sweep.
	ListBookedInWindow(ctx context.Context, fromDate, toDate string) ([]models.AvailabilitySlot, error)
}
