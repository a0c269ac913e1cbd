// File: database/repository/settings/settingsRepo.go
package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SettingsRepository interface {
	ServiceFee(ctx context.Context) (float64, error)
}

type mongoSettingsRepo struct {
	coll     *mongo.Collection
	fallback float64
}

// NewMongoSettingsRepo constructs a SettingsRepository. fallback is used when the fee is not stored.
func NewMongoSettingsRepo(fallback float64) SettingsRepository {
	return &mongoSettingsRepo{coll: database.Database().Collection("settings"), fallback: fallback}
}

// ServiceFee reads the booking service fee setting.
func (r *mongoSettingsRepo) ServiceFee(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var setting models.Setting
	err := r.coll.FindOne(ctx, bson.M{"key": models.SettingBookingServiceFee}).Decode(&setting)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return r.fallback, nil
		}
		return 0, fmt.Errorf("failed to fetch setting %s: %w", models.SettingBookingServiceFee, err)
	}
	return ParseFee(setting.Value, r.fallback)
}

// ParseFee converts a stored setting value. Blank values fall back.
func ParseFee(raw string, fallback float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	fee, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", models.SettingBookingServiceFee, raw, err)
	}
	return fee, nil
}
