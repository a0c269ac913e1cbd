// FILE: database/repository/catalog/indexes.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the quote lookups rely on.
func (r *mongoCatalogRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.serviceMasters.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "masterId", Value: 1}, {Key: "serviceId", Value: 1}},
			Options: options.Index().SetName("master_service_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create service master indexes: %w", err)
	}

	_, err = r.extras.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "serviceMasterId", Value: 1}},
			Options: options.Index().SetName("service_master_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create service extra indexes: %w", err)
	}
	return nil
}
