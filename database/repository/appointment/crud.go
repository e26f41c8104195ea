package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"randevu/models"
)

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

func (r *mongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

// UpdateStatus is the appointment counterpart of the availability reserve: a
// conditional update whose filter carries the status the caller read, so a
// concurrent transition that got there first leaves nothing to match.
func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, appt *models.Appointment, fromStatus string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":            appt.Status,
		"userConfirmed":     appt.UserConfirmed,
		"businessConfirmed": appt.BusinessConfirmed,
		"cancelReason":      appt.CancelReason,
		"canceledAt":        appt.CanceledAt,
		"completedAt":       appt.CompletedAt,
		"notes":             appt.Notes,
		"updatedAt":         appt.UpdatedAt,
	}}
	filter := bson.M{"id": appt.ID, "status": fromStatus}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", appt.ID, err)
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetByID(ctx, appt.ID); errors.Is(getErr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrStatusConflict
	}
	return nil
}
