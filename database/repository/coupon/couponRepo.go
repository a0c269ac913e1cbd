// File: database/repository/coupon/couponRepo.go
package couponRepo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CouponRepository interface {
	Price(ctx context.Context, code string, amount, rate float64) (float64, error)
	EnsureIndexes() error
}

type mongoCouponRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoCouponRepo constructs a new MongoDB CouponRepository.
func NewMongoCouponRepo() CouponRepository {
	return &mongoCouponRepo{coll: database.Database().Collection("coupons"), now: time.Now}
}

// Price returns the discount granted by code on amount. Unknown codes grant nothing.
func (r *mongoCouponRepo) Price(ctx context.Context, code string, amount, rate float64) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var coupon models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"name": code}).Decode(&coupon); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to fetch coupon: %w", err)
	}
	return CouponDiscount(coupon, amount, rate, r.now()), nil
}

// CouponDiscount computes what c takes off amount, never more than amount itself.
func CouponDiscount(c models.Coupon, amount, rate float64, now time.Time) float64 {
	if amount <= 0 || c.Qty <= 0 {
		return 0
	}
	if !c.ExpiredAt.IsZero() && c.ExpiredAt.Before(now) {
		return 0
	}
	var discount float64
	switch c.Type {
	case models.CouponFix:
		discount = c.Price * rate
	case models.CouponPercent:
		discount = amount / 100 * c.Price
	}
	return math.Min(math.Max(discount, 0), amount)
}

func (r *mongoCouponRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_name"),
	})
	if err != nil {
		return fmt.Errorf("failed to create coupon indexes: %w", err)
	}
	return nil
}
