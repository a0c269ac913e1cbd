// File: database/repository/currency/currencyRepo.go
package currencyRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CurrencyRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Currency, error)
}

type mongoCurrencyRepo struct {
	coll *mongo.Collection
}

// NewMongoCurrencyRepo constructs a new MongoDB CurrencyRepository.
func NewMongoCurrencyRepo() CurrencyRepository {
	return &mongoCurrencyRepo{coll: database.Database().Collection("currencies")}
}

// FindByCode returns the active currency with the given code, or nil when there is none.
func (r *mongoCurrencyRepo) FindByCode(ctx context.Context, code string) (*models.Currency, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var currency models.Currency
	err := r.coll.FindOne(ctx, bson.M{"code": strings.ToUpper(code), "active": true}).Decode(&currency)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch currency %s: %w", code, err)
	}
	return &currency, nil
}
