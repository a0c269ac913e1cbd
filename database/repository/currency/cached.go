// File: database/repository/currency/cached.go
package currencyRepo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"glowbook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// missingMarker is cached for codes the store does not know, so they are not looked up on every quote.
const missingMarker = "-"

type cachedCurrencyRepo struct {
	inner  CurrencyRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCurrencyRepo wraps inner with a Redis read-through cache. Cache failures are logged and bypassed.
func NewCachedCurrencyRepo(inner CurrencyRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) CurrencyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedCurrencyRepo{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func CacheKey(code string) string {
	return "currency:rate:" + strings.ToUpper(code)
}

func (r *cachedCurrencyRepo) FindByCode(ctx context.Context, code string) (*models.Currency, error) {
	key := CacheKey(code)

	raw, err := r.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		if raw == missingMarker {
			return nil, nil
		}
		var currency models.Currency
		if jsonErr := json.Unmarshal([]byte(raw), &currency); jsonErr == nil {
			return &currency, nil
		}
		r.logger.Warn("discarding corrupt cached currency", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Warn("currency cache read failed", zap.String("key", key), zap.Error(err))
	}

	currency, err := r.inner.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	value := missingMarker
	if currency != nil {
		encoded, jsonErr := json.Marshal(currency)
		if jsonErr != nil {
			return currency, nil
		}
		value = string(encoded)
	}
	if setErr := r.cache.Set(ctx, key, value, r.ttl).Err(); setErr != nil {
		r.logger.Warn("currency cache write failed", zap.String("key", key), zap.Error(setErr))
	}
	return currency, nil
}
