package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"randevu/models"
)

func (r *mongoAvailabilityRepo) GetByDay(ctx context.Context, shopID, staffID, date string) (*models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shopId": shopID, "staffId": staffID, "date": date}
	var slot models.AvailabilitySlot
	err := r.coll.FindOne(ctx, filter).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for shop %s on %s: %w", shopID, date, err)
	}
	return &slot, nil
}

func (r *mongoAvailabilityRepo) ListUpcoming(ctx context.Context, shopID, staffID, fromDate string, horizonDays int) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"shopId": shopID,
		"date":   bson.M{"$gte": fromDate},
	}
	if staffID != "" {
		filter["staffId"] = staffID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetLimit(int64(horizonDays))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability for shop %s: %w", shopID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode availability records: %w", err)
	}
	return slots, nil
}

// UpsertDays publishes daily records. For days that already exist only the
// published grid and working flag are replaced; booked slots and the version
// stamp survive regeneration so active appointments keep their reservations.
func (r *mongoAvailabilityRepo) UpsertDays(ctx context.Context, slots []models.AvailabilitySlot) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now().UTC()
	for _, slot := range slots {
		filter := bson.M{"shopId": slot.ShopID, "staffId": slot.StaffID, "date": slot.Date}
		update := bson.M{
			"$set": bson.M{
				"timeSlots":   slot.TimeSlots,
				"isAvailable": slot.IsAvailable,
				"updatedAt":   now,
			},
			"$setOnInsert": bson.M{
				"id":          uuid.New().String(),
				"shopId":      slot.ShopID,
				"staffId":     slot.StaffID,
				"date":        slot.Date,
				"bookedSlots": []string{},
				"version":     0,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to upsert availability for shop %s on %s: %w", slot.ShopID, slot.Date, err)
		}
	}
	return nil
}

func (r *mongoAvailabilityRepo) ListBookedInWindow(ctx context.Context, fromDate, toDate string) ([]models.AvailabilitySlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"date":          bson.M{"$gte": fromDate, "$lte": toDate},
		"bookedSlots.0": bson.M{"$exists": true},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked availability records: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode availability records: %w", err)
	}
	return slots, nil
}
