package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"randevu/models"
)

func (r *mongoAppointmentRepo) FindActiveBySlot(ctx context.Context, shopID, staffID, date, timeSlot string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dayStart, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	filter := bson.M{
		"shopId":   shopID,
		"staffId":  staffID,
		"timeSlot": timeSlot,
		"status":   bson.M{"$in": models.ActiveStatuses},
		"date":     bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)},
	}
	var appt models.Appointment
	findErr := r.coll.FindOne(ctx, filter).Decode(&appt)
	if errors.Is(findErr, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if findErr != nil {
		return nil, fmt.Errorf("failed to look up appointment for slot %s %s: %w", date, timeSlot, findErr)
	}
	return &appt, nil
}

// Half-open window overlap: [Date, EndTime) overlaps [start, end) iff
// Date < end && EndTime > start.
func overlapFilter(start, end time.Time) bson.M {
	return bson.M{
		"status":  bson.M{"$in": models.ActiveStatuses},
		"date":    bson.M{"$lt": end},
		"endTime": bson.M{"$gt": start},
	}
}

func (r *mongoAppointmentRepo) FindUserOverlapping(ctx context.Context, userID, shopID string, start, end time.Time) ([]models.Appointment, error) {
	filter := overlapFilter(start, end)
	filter["userId"] = userID
	filter["shopId"] = shopID
	return r.find(ctx, filter, nil)
}

func (r *mongoAppointmentRepo) FindStaffOverlapping(ctx context.Context, shopID, staffID string, start, end time.Time) ([]models.Appointment, error) {
	filter := overlapFilter(start, end)
	filter["shopId"] = shopID
	filter["staffId"] = staffID
	return r.find(ctx, filter, nil)
}

func (r *mongoAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *mongoAppointmentRepo) ListByShopDay(ctx context.Context, shopID, date string) ([]models.Appointment, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	filter := bson.M{
		"shopId": shopID,
		"date":   bson.M{"$gte": dayStart, "$lt": dayStart.AddDate(0, 0, 1)},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoAppointmentRepo) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	filter := bson.M{
		"status":  models.StatusConfirmed,
		"endTime": bson.M{"$lt": cutoff},
	}
	opts := options.Find().SetSort(bson.D{{Key: "endTime", Value: 1}}).SetLimit(int64(limit))
	return r.find(ctx, filter, opts)
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appts, nil
}
