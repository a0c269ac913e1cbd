package quote

import (
	"math"

	"glowbook/models"

	"go.uber.org/zap"
)

// PricingContext carries the per-quote values every item is priced with.
type PricingContext struct {
	Rate float64
	// ServiceFee is already converted with Rate.
	ServiceFee float64
}

// TimeWindow is a half-open time-of-day range in minutes from midnight.
type TimeWindow struct {
	From int
	To   int
}

// Contains reports whether the slot's time-of-day interval lies entirely inside the window.
func (w TimeWindow) Contains(slot Slot) bool {
	return w.From <= slot.StartMinute() && slot.EndMinute() <= w.To
}

// WindowOf parses the rule's "HH:MM" bounds.
func WindowOf(rule models.SmartPriceRule) (TimeWindow, error) {
	from, err := ParseClock(rule.From)
	if err != nil {
		return TimeWindow{}, err
	}
	to, err := ParseClock(rule.To)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{From: from, To: to}, nil
}

// SelectSmartRule returns the first rule, in stored order, whose window contains the slot.
func SelectSmartRule(rules []models.SmartPriceRule, slot Slot, logger *zap.Logger) (models.SmartPriceRule, bool) {
	for _, rule := range rules {
		window, err := WindowOf(rule)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping smart rule with invalid window",
					zap.String("from", rule.From), zap.String("to", rule.To), zap.Error(err))
			}
			continue
		}
		if window.Contains(slot) {
			return rule, true
		}
	}
	return models.SmartPriceRule{}, false
}

// ApplySmartRule adjusts a tier price by the rule. The result is floored at 0 and not yet rate-converted.
func ApplySmartRule(price float64, rule models.SmartPriceRule) float64 {
	adjustment := rule.Value
	if rule.ValueType == models.SmartValuePercent {
		adjustment = math.Max(price/100*rule.Value, 0)
	}
	switch rule.Type {
	case models.SmartTypeIncrease:
		price += adjustment
	case models.SmartTypeDecrease:
		price -= adjustment
	}
	return math.Max(price, 0)
}

// PriceResolver turns a catalog entry and a slot into an item price breakdown.
type PriceResolver struct {
	Logger *zap.Logger
}

// Resolve prices one requested service. extras must already be filtered to the ones the item selected.
func (pr PriceResolver) Resolve(
	entry models.ServiceMaster,
	req models.ItemRequest,
	extras []models.ServiceExtra,
	slot Slot,
	pc PricingContext,
) models.BookingItem {
	item := models.BookingItem{
		ServiceMasterID: entry.ID,
		MasterID:        entry.MasterID,
		ServiceID:       entry.ServiceID,
		PriceTierID:     req.PriceTierID,
		Extras:          extras,
		StartDate:       slot.Start,
		EndDate:         slot.End,
		Price:           entry.Price * pc.Rate,
		Discount:        entry.Discount * pc.Rate,
		ServiceFee:      pc.ServiceFee,
		CommissionFee:   entry.CommissionFee * pc.Rate,
		Note:            req.Note,
		Gender:          req.Gender,
		CustomData:      req.CustomData,
		Notes:           req.Notes,
	}

	var extraPrice float64
	for _, extra := range extras {
		extraPrice += extra.Price
	}
	item.ExtraPrice = extraPrice * pc.Rate

	total := entry.BaseTotal() * pc.Rate
	if req.PriceTierID != "" {
		tier, ok := entry.Tier(req.PriceTierID)
		if !ok {
			pr.logger().Warn("price tier not found for service master",
				zap.String("serviceMasterID", entry.ID), zap.String("priceID", req.PriceTierID))
			item.AddError(models.ErrPriceNotFound)
		} else {
			total = pr.tierPrice(tier, slot) * pc.Rate
		}
	}

	item.TotalPrice = total + item.ServiceFee + item.ExtraPrice
	return item
}

func (pr PriceResolver) tierPrice(tier models.PriceTier, slot Slot) float64 {
	price := tier.Price
	if rule, ok := SelectSmartRule(tier.Smart, slot, pr.logger()); ok {
		price = ApplySmartRule(price, rule)
	}
	return math.Max(price, 0)
}

func (pr PriceResolver) logger() *zap.Logger {
	if pr.Logger != nil {
		return pr.Logger
	}
	return zap.L()
}
