package quote

import (
	"context"
	"fmt"
	"math"
	"sort"

	"glowbook/models"

	"go.uber.org/zap"
)

// giftFold is the state carried from one item to the next while spending a gift card.
type giftFold struct {
	share     float64 // what the current item may take
	remaining float64 // what is left on the card
	owed      float64 // what is left to pay across the unsettled items
}

// WaterfallGift spreads ledger over totals and returns how much of it each total receives.
//
// Every item starts with an equal share of the card. Items are visited cheapest first; the
// part of a share an item cannot use is carried to the next one. Once the card covers
// everything still owed, the remaining items are settled in full.
func WaterfallGift(totals []float64, ledger float64) []float64 {
	gifts := make([]float64, len(totals))
	if len(totals) == 0 || ledger <= 0 {
		return gifts
	}

	var owed float64
	for _, total := range totals {
		owed += math.Max(total, 0)
	}
	if owed <= 0 {
		return gifts
	}

	order := make([]int, len(totals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return totals[order[a]] < totals[order[b]]
	})

	base := ledger / float64(len(totals))
	state := giftFold{share: base, remaining: ledger, owed: owed}

	for pos, idx := range order {
		if state.owed <= state.remaining {
			for _, rest := range order[pos:] {
				gifts[rest] = math.Max(totals[rest], 0)
			}
			return gifts
		}
		total := math.Max(totals[idx], 0)
		take := math.Min(math.Min(state.share, total), state.remaining)
		gifts[idx] = take
		state = giftFold{
			share:     base + (state.share - take),
			remaining: state.remaining - take,
			owed:      state.owed - take,
		}
	}
	return gifts
}

// Settlement is the aggregate outcome of applying credits to a priced chain.
type Settlement struct {
	GiftCartPrice float64
	CouponPrice   float64
	TotalPrice    float64
}

// CreditAllocator spends gift card credit across items and then applies the coupon to the aggregate.
type CreditAllocator struct {
	Coupons CouponPricer
	Logger  *zap.Logger
}

// Allocate mutates items' TotalPrice and GiftCartPrice. ledger is already in the quote currency.
func (ca CreditAllocator) Allocate(ctx context.Context, items []models.BookingItem, ledger float64, coupon string, rate float64) (Settlement, error) {
	var settlement Settlement

	totals := make([]float64, len(items))
	for i, item := range items {
		totals[i] = item.TotalPrice
	}

	for i, gift := range WaterfallGift(totals, ledger) {
		if gift == 0 {
			continue
		}
		items[i].GiftCartPrice = gift
		items[i].TotalPrice = ca.floor("item total", items[i].TotalPrice-gift)
		settlement.GiftCartPrice += gift
	}

	var aggregate float64
	for _, item := range items {
		aggregate += item.TotalPrice
	}

	if coupon != "" && aggregate > 0 && ca.Coupons != nil {
		discount, err := ca.Coupons.Price(ctx, coupon, aggregate, rate)
		if err != nil {
			return Settlement{}, fmt.Errorf("failed to price coupon: %w", err)
		}
		settlement.CouponPrice = math.Max(discount, 0)
		aggregate -= settlement.CouponPrice
	}

	settlement.TotalPrice = ca.floor("aggregate total", aggregate)
	return settlement, nil
}

// floor clamps a negative amount to 0. Reaching it means the credit arithmetic went wrong.
func (ca CreditAllocator) floor(what string, amount float64) float64 {
	if amount >= 0 {
		return amount
	}
	if amount < -1e-9 && ca.Logger != nil {
		ca.Logger.Warn("CreditLedgerInconsistency: negative amount clamped to zero",
			zap.String("field", what), zap.Float64("amount", amount))
	}
	return 0
}
