package availabilityRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"randevu/database"
)

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo returns an AvailabilityRepository backed by the
// "availability" collection.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &mongoAvailabilityRepo{coll: database.Collection("availability")}
}
