package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// reserveMaxRetries bounds optimistic-concurrency retries. Losing every retry
// means the slot record is churning, in which case the caller gets the
// definitive booked/not-bookable answer from the re-read instead of queueing.
const reserveMaxRetries = 3

// Reserve moves timeSlot from free to booked using an optimistic
// version-stamped update: the write only matches the document at the version
// we read, and bumps it. Two concurrent callers racing for the same time see
// exactly one matched update; the loser re-reads and reports ErrAlreadyBooked.
func (r *mongoAvailabilityRepo) Reserve(ctx context.Context, shopID, staffID, date, timeSlot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for attempt := 0; attempt < reserveMaxRetries; attempt++ {
		day, err := r.GetByDay(ctx, shopID, staffID, date)
		if err != nil {
			return err
		}
		if day == nil || !day.IsAvailable || !day.HasTimeSlot(timeSlot) {
			return ErrNoSuchSlot
		}
		if day.IsBooked(timeSlot) {
			return ErrAlreadyBooked
		}

		filter := bson.M{
			"shopId":      shopID,
			"staffId":     staffID,
			"date":        date,
			"isAvailable": true,
			"timeSlots":   timeSlot,
			"bookedSlots": bson.M{"$ne": timeSlot},
			"version":     day.Version,
		}
		update := bson.M{
			"$addToSet": bson.M{"bookedSlots": timeSlot},
			"$inc":      bson.M{"version": 1},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		}

		res, err := r.coll.UpdateOne(ctx, filter, update)
		if err != nil {
			return fmt.Errorf("failed to reserve slot %s on %s: %w", timeSlot, date, err)
		}
		if res.ModifiedCount == 1 {
			return nil
		}
		// Version mismatch: someone else mutated the record first. Loop to
		// re-read; if they took this very slot the next pass reports it.
	}
	return ErrAlreadyBooked
}

// Release is the inverse of Reserve. Releasing an already-free slot reports
// ErrNotBooked, which double-cancel callers tolerate.
func (r *mongoAvailabilityRepo) Release(ctx context.Context, shopID, staffID, date, timeSlot string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for attempt := 0; attempt < reserveMaxRetries; attempt++ {
		day, err := r.GetByDay(ctx, shopID, staffID, date)
		if err != nil {
			return err
		}
		if day == nil || !day.IsBooked(timeSlot) {
			return ErrNotBooked
		}

		filter := bson.M{
			"shopId":      shopID,
			"staffId":     staffID,
			"date":        date,
			"bookedSlots": timeSlot,
			"version":     day.Version,
		}
		update := bson.M{
			"$pull": bson.M{"bookedSlots": timeSlot},
			"$inc":  bson.M{"version": 1},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		}

		res, err := r.coll.UpdateOne(ctx, filter, update)
		if err != nil {
			return fmt.Errorf("failed to release slot %s on %s: %w", timeSlot, date, err)
		}
		if res.ModifiedCount == 1 {
			return nil
		}
	}
	return ErrNotBooked
}
