// FILE: database/repository/schedule/indexes.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the per-master lookup indexes used by Times.
func (repo *mongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	specs := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{repo.closedColl, mongo.IndexModel{
			Keys:    bson.D{{Key: "masterId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("master_date_idx"),
		}},
		{repo.workingColl, mongo.IndexModel{
			Keys:    bson.D{{Key: "masterId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("master_day_idx"),
		}},
		{repo.blockedColl, mongo.IndexModel{
			Keys:    bson.D{{Key: "master_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("master_date_idx"),
		}},
		{repo.bookingColl, mongo.IndexModel{
			Keys:    bson.D{{Key: "masterId", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index().SetName("master_window_idx"),
		}},
	}
	for _, ix := range specs {
		if _, err := ix.coll.Indexes().CreateOne(ctx, ix.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", ix.coll.Name(), err)
		}
	}
	return nil
}
