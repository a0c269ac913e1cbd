// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository answers "when is this master unavailable" for the quote engine.
type ScheduleRepository interface {
	Times(ctx context.Context, masterID string, from, to time.Time) (map[string]models.DayAvailability, error)
	EnsureIndexes() error
}

type mongoScheduleRepo struct {
	closedColl  *mongo.Collection
	workingColl *mongo.Collection
	blockedColl *mongo.Collection
	bookingColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.Database()
	return &mongoScheduleRepo{
		closedColl:  db.Collection("master_closed_dates"),
		workingColl: db.Collection("master_working_days"),
		blockedColl: db.Collection("blocked"),
		bookingColl: db.Collection("bookings"),
	}
}
