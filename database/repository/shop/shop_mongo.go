package shopRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"randevu/database"
	"randevu/models"
)

type mongoShopRepo struct {
	coll *mongo.Collection
}

// NewMongoShopRepo returns a ShopRepository backed by the "shops" collection.
func NewMongoShopRepo() ShopRepository {
	return &mongoShopRepo{coll: database.Collection("shops")}
}

func (r *mongoShopRepo) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop models.Shop
	err := r.coll.FindOne(ctx, bson.M{"id": shopID}).Decode(&shop)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop %s: %w", shopID, err)
	}
	return &shop, nil
}

func (r *mongoShopRepo) UpdateRating(ctx context.Context, shopID string, rating models.ShopRating) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"rating": rating}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": shopID}, update)
	if err != nil {
		return fmt.Errorf("failed to update rating for shop %s: %w", shopID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
