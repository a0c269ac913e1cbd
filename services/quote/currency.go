package quote

import (
	"context"
	"fmt"
	"strings"
)

// CurrencyContext resolves the multiplier applied to every base-currency amount of a quote.
type CurrencyContext struct {
	Store       CurrencyStore
	DefaultCode string
}

// Rate returns the exchange rate for code, or 1 when the currency is unknown.
func (cc CurrencyContext) Rate(ctx context.Context, code string) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = strings.ToUpper(cc.DefaultCode)
	}
	if cc.Store == nil || code == "" {
		return 1, nil
	}
	currency, err := cc.Store.FindByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve currency %s: %w", code, err)
	}
	if currency == nil || currency.Rate <= 0 {
		return 1, nil
	}
	return currency.Rate, nil
}
