package quote

import (
	"context"
	"time"

	"glowbook/models"
)

// QuoteEngine computes a booking quote. It never returns an error: failures are reported in the result.
type QuoteEngine interface {
	Calculate(ctx context.Context, req models.BookingQuoteRequest) models.BookingQuoteResult
}

// CatalogLookup supplies service masters and extras. Results may come back in any order.
type CatalogLookup interface {
	FindServiceMasters(ctx context.Context, ids []string) ([]models.ServiceMaster, error)
	FindExtras(ctx context.Context, ids []string) ([]models.ServiceExtra, error)
}

// AvailabilityOracle returns a master's calendar keyed by "2006-01-02" for every day in [from, to].
// Absent days carry no restriction.
type AvailabilityOracle interface {
	Times(ctx context.Context, masterID string, from, to time.Time) (map[string]models.DayAvailability, error)
}

// MembershipStore returns the user's non-expired memberships covering the service.
// An empty membershipID means any membership of the user.
type MembershipStore interface {
	FindActive(ctx context.Context, userID, membershipID, serviceID string, now time.Time) ([]models.MemberShip, error)
}

// GiftCardStore returns the gift card if it exists, belongs to the user (when set) and is not expired.
// A missing card is (nil, nil).
type GiftCardStore interface {
	FindActive(ctx context.Context, id, userID string, now time.Time) (*models.GiftCart, error)
}

// CouponPricer returns the discount a coupon grants on amount, already in the quote currency.
type CouponPricer interface {
	Price(ctx context.Context, code string, amount, rate float64) (float64, error)
}

// CurrencyStore looks up a currency by code. A missing currency is (nil, nil).
type CurrencyStore interface {
	FindByCode(ctx context.Context, code string) (*models.Currency, error)
}

// ServiceFeeSource supplies the platform booking fee in base currency.
type ServiceFeeSource interface {
	ServiceFee(ctx context.Context) (float64, error)
}
