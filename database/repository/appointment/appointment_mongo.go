package appointmentRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"randevu/database"
)

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by the
// "appointments" collection.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{coll: database.Collection("appointments")}
}
