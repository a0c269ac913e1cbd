// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogRepository interface {
	FindServiceMasters(ctx context.Context, ids []string) ([]models.ServiceMaster, error)
	FindExtras(ctx context.Context, ids []string) ([]models.ServiceExtra, error)
	EnsureIndexes() error
}

type mongoCatalogRepo struct {
	serviceMasters *mongo.Collection
	extras         *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.Database()
	return &mongoCatalogRepo{
		serviceMasters: db.Collection("service_masters"),
		extras:         db.Collection("service_extras"),
	}
}
