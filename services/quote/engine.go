package quote

import (
	"context"
	"fmt"
	"math"
	"time"

	"glowbook/models"

	"go.uber.org/zap"
)

// DefaultQuoteEngine is the production QuoteEngine.
type DefaultQuoteEngine struct {
	Catalog      CatalogLookup
	Availability AvailabilityOracle
	Memberships  MembershipStore
	GiftCards    GiftCardStore
	Coupons      CouponPricer
	Currencies   CurrencyStore
	Fees         ServiceFeeSource

	DefaultCurrency string
	// FallbackServiceFee is used when Fees is nil.
	FallbackServiceFee float64
	Location           *time.Location
	Now                func() time.Time
	Logger             *zap.Logger
}

// Calculate prices and validates the requested chain of services.
func (e *DefaultQuoteEngine) Calculate(ctx context.Context, req models.BookingQuoteRequest) (result models.BookingQuoteResult) {
	logger := e.logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Calculate: recovered panic", zap.Any("panic", r))
			result = failedQuote(req, fmt.Sprintf("failed to calculate booking: %v", r))
		}
	}()

	res, err := e.calculate(ctx, req)
	if err != nil {
		logger.Warn("Calculate: quote failed", zap.String("startDate", req.StartDate), zap.Error(err))
		return failedQuote(req, err.Error())
	}
	return res
}

func (e *DefaultQuoteEngine) calculate(ctx context.Context, req models.BookingQuoteRequest) (models.BookingQuoteResult, error) {
	logger := e.logger()
	now := e.now()
	loc := e.location()

	start, err := ParseQuoteDate(req.StartDate, loc)
	if err != nil {
		return models.BookingQuoteResult{}, newScheduleError("malformed start date", err)
	}
	end := start
	if req.EndDate != "" {
		if end, err = ParseQuoteDate(req.EndDate, loc); err != nil {
			return models.BookingQuoteResult{}, newScheduleError("malformed end date", err)
		}
	}
	if err := ValidateSchedule(start, end, now); err != nil {
		return models.BookingQuoteResult{}, err
	}
	if len(req.Items) == 0 {
		return models.BookingQuoteResult{}, ErrNoItems
	}

	rate, err := CurrencyContext{Store: e.Currencies, DefaultCode: e.DefaultCurrency}.Rate(ctx, req.Currency)
	if err != nil {
		return models.BookingQuoteResult{}, err
	}

	serviceFee, err := e.serviceFee(ctx)
	if err != nil {
		return models.BookingQuoteResult{}, err
	}
	pc := PricingContext{Rate: rate, ServiceFee: math.Max(serviceFee, 0) * rate}

	catalog, err := e.loadCatalog(ctx, req.Items)
	if err != nil {
		return models.BookingQuoteResult{}, err
	}
	extras, err := e.loadExtras(ctx, req.Items)
	if err != nil {
		return models.BookingQuoteResult{}, err
	}

	var ledger float64
	if req.GiftCartID != "" {
		if ledger, err = e.giftLedger(ctx, req, now, rate); err != nil {
			return models.BookingQuoteResult{}, err
		}
	}

	durations := make([]int, len(req.Items))
	for i, itemReq := range req.Items {
		durations[i] = catalog[itemReq.ServiceMasterID].Duration()
	}
	slots := ChainSlots(start, durations)

	pricer := PriceResolver{Logger: logger}
	offsetter := MembershipOffsetter{Store: e.Memberships}
	validator := AvailabilityValidator{Oracle: e.Availability, Logger: logger}

	items := make([]models.BookingItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		entry := catalog[itemReq.ServiceMasterID]
		item := pricer.Resolve(entry, itemReq, selectExtras(extras, entry.ID, itemReq.ExtraIDs), slots[i], pc)

		if _, err := offsetter.Offset(ctx, req.UserID, req.MemberShipID, now, &item); err != nil {
			return models.BookingQuoteResult{}, err
		}
		validator.Validate(ctx, entry.MasterID, slots[i], &item)

		items = append(items, item)
	}

	allocator := CreditAllocator{Coupons: e.Coupons, Logger: logger}
	settlement, err := allocator.Allocate(ctx, items, ledger, req.Coupon, rate)
	if err != nil {
		return models.BookingQuoteResult{}, err
	}

	result := models.BookingQuoteResult{
		Status:        true,
		StartDate:     start.Format(models.QuoteDateLayout),
		EndDate:       slots[len(slots)-1].End.Format(models.QuoteDateLayout),
		GiftCartID:    req.GiftCartID,
		Rate:          rate,
		GiftCartPrice: settlement.GiftCartPrice,
		CouponPrice:   settlement.CouponPrice,
		TotalPrice:    settlement.TotalPrice,
		Items:         items,
	}
	for _, item := range items {
		result.Price += item.Price
		result.Discount += item.Discount
		result.ServiceFee += item.ServiceFee
		result.CommissionFee += item.CommissionFee
		if !item.Valid() {
			result.Status = false
		}
	}

	logger.Debug("quote calculated",
		zap.Int("items", len(items)),
		zap.Bool("status", result.Status),
		zap.Float64("totalPrice", result.TotalPrice))
	return result, nil
}

// loadCatalog fetches every requested service master and keys it by id.
func (e *DefaultQuoteEngine) loadCatalog(ctx context.Context, reqs []models.ItemRequest) (map[string]models.ServiceMaster, error) {
	if e.Catalog == nil {
		return nil, fmt.Errorf("catalog lookup is not configured")
	}
	ids := uniqueIDs(len(reqs), func(i int) []string { return []string{reqs[i].ServiceMasterID} })
	entries, err := e.Catalog.FindServiceMasters(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load service masters: %w", err)
	}
	byID := make(map[string]models.ServiceMaster, len(entries))
	for _, entry := range entries {
		byID[entry.ID] = entry
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrCatalogMiss, id)
		}
	}
	return byID, nil
}

func (e *DefaultQuoteEngine) loadExtras(ctx context.Context, reqs []models.ItemRequest) (map[string]models.ServiceExtra, error) {
	ids := uniqueIDs(len(reqs), func(i int) []string { return reqs[i].ExtraIDs })
	if len(ids) == 0 {
		return nil, nil
	}
	extras, err := e.Catalog.FindExtras(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load service extras: %w", err)
	}
	byID := make(map[string]models.ServiceExtra, len(extras))
	for _, extra := range extras {
		byID[extra.ID] = extra
	}
	return byID, nil
}

// selectExtras keeps the requested extras that exist and belong to the service master, in request order.
func selectExtras(extras map[string]models.ServiceExtra, serviceMasterID string, ids []string) []models.ServiceExtra {
	var selected []models.ServiceExtra
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		extra, ok := extras[id]
		if !ok || seen[id] {
			continue
		}
		if extra.ServiceMasterID != "" && extra.ServiceMasterID != serviceMasterID {
			continue
		}
		seen[id] = true
		selected = append(selected, extra)
	}
	return selected
}

func (e *DefaultQuoteEngine) giftLedger(ctx context.Context, req models.BookingQuoteRequest, now time.Time, rate float64) (float64, error) {
	if e.GiftCards == nil {
		return 0, ErrGiftCardInvalid
	}
	card, err := e.GiftCards.FindActive(ctx, req.GiftCartID, req.UserID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to load gift card: %w", err)
	}
	if card == nil || card.Price <= 0 || (!card.ExpiredAt.IsZero() && card.ExpiredAt.Before(now)) {
		return 0, ErrGiftCardInvalid
	}
	return card.Price * rate, nil
}

func (e *DefaultQuoteEngine) serviceFee(ctx context.Context) (float64, error) {
	if e.Fees == nil {
		return e.FallbackServiceFee, nil
	}
	fee, err := e.Fees.ServiceFee(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load booking service fee: %w", err)
	}
	return fee, nil
}

func (e *DefaultQuoteEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultQuoteEngine) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.UTC
}

func (e *DefaultQuoteEngine) logger() *zap.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return zap.L()
}

func failedQuote(req models.BookingQuoteRequest, message string) models.BookingQuoteResult {
	return models.BookingQuoteResult{
		Status:     false,
		Message:    message,
		StartDate:  req.StartDate,
		GiftCartID: req.GiftCartID,
		Rate:       1,
		Items:      []models.BookingItem{},
	}
}

func uniqueIDs(n int, at func(i int) []string) []string {
	seen := make(map[string]bool)
	var ids []string
	for i := 0; i < n; i++ {
		for _, id := range at(i) {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
