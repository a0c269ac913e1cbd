// File: database/repository/catalog/queries.go
package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// FindServiceMasters returns the active service masters among ids. Order is not guaranteed.
func (r *mongoCatalogRepo) FindServiceMasters(ctx context.Context, ids []string) ([]models.ServiceMaster, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bson.M{"$in": ids}, "active": true}
	cursor, err := r.serviceMasters.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service masters: %w", err)
	}
	defer cursor.Close(ctx)

	var masters []models.ServiceMaster
	if err := cursor.All(ctx, &masters); err != nil {
		return nil, fmt.Errorf("error decoding service masters: %w", err)
	}
	return masters, nil
}

// FindExtras returns the active extras among ids.
func (r *mongoCatalogRepo) FindExtras(ctx context.Context, ids []string) ([]models.ServiceExtra, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.extras.Find(ctx, bson.M{"id": bson.M{"$in": ids}, "active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service extras: %w", err)
	}
	defer cursor.Close(ctx)

	var extras []models.ServiceExtra
	if err := cursor.All(ctx, &extras); err != nil {
		return nil, fmt.Errorf("error decoding service extras: %w", err)
	}
	return extras, nil
}
