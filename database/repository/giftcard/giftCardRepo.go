// File: database/repository/giftcard/giftCardRepo.go
package giftCardRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GiftCardRepository interface {
	FindActive(ctx context.Context, id, userID string, now time.Time) (*models.GiftCart, error)
	EnsureIndexes() error
}

type mongoGiftCardRepo struct {
	coll *mongo.Collection
}

// NewMongoGiftCardRepo constructs a new MongoDB GiftCardRepository.
func NewMongoGiftCardRepo() GiftCardRepository {
	return &mongoGiftCardRepo{coll: database.Database().Collection("user_gift_carts")}
}

// FindActive returns the active, unexpired gift card, or nil when there is none.
func (r *mongoGiftCardRepo) FindActive(ctx context.Context, id, userID string, now time.Time) (*models.GiftCart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":        id,
		"active":    true,
		"expiredAt": bson.M{"$gte": now},
	}
	if userID != "" {
		filter["userId"] = userID
	}

	var card models.GiftCart
	if err := r.coll.FindOne(ctx, filter).Decode(&card); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch gift card: %w", err)
	}
	return &card, nil
}

func (r *mongoGiftCardRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create gift card indexes: %w", err)
	}
	return nil
}
