// File: database/repository/membership/membershipRepo.go
package membershipRepo

import (
	"context"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MembershipRepository interface {
	FindActive(ctx context.Context, userID, membershipID, serviceID string, now time.Time) ([]models.MemberShip, error)
	EnsureIndexes() error
}

type mongoMembershipRepo struct {
	coll *mongo.Collection
}

// NewMongoMembershipRepo constructs a new MongoDB MembershipRepository.
func NewMongoMembershipRepo() MembershipRepository {
	return &mongoMembershipRepo{coll: database.Database().Collection("user_member_ships")}
}

// ActiveFilter selects the user's unexpired memberships covering serviceID.
func ActiveFilter(userID, membershipID, serviceID string, now time.Time) bson.M {
	filter := bson.M{
		"userId":     userID,
		"serviceIds": serviceID,
		"expiredAt":  bson.M{"$gt": now},
	}
	if membershipID != "" {
		filter["id"] = membershipID
	}
	return filter
}

// FindActive returns matching memberships, soonest to expire first.
func (r *mongoMembershipRepo) FindActive(ctx context.Context, userID, membershipID, serviceID string, now time.Time) ([]models.MemberShip, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "expiredAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, ActiveFilter(userID, membershipID, serviceID, now), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch memberships: %w", err)
	}
	defer cursor.Close(ctx)

	var memberships []models.MemberShip
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, fmt.Errorf("error decoding memberships: %w", err)
	}
	return memberships, nil
}

func (r *mongoMembershipRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "expiredAt", Value: 1}},
		Options: options.Index().SetName("user_expiry_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create membership indexes: %w", err)
	}
	return nil
}
