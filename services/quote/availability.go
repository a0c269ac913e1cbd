package quote

import (
	"context"

	"glowbook/models"

	"go.uber.org/zap"
)

// CheckSlot returns the validation errors of a slot against the master's calendar.
//
// Only the start day's disabled times are consulted, so a slot running past midnight
// is not checked against the following day's bookings.
func CheckSlot(days map[string]models.DayAvailability, slot Slot) []models.ErrorCode {
	var codes []models.ErrorCode

	startDay := days[slot.StartDay()]
	endDay := days[slot.EndDay()]
	if startDay.Closed || endDay.Closed {
		codes = append(codes, models.ErrMasterClosed)
	}

	if len(startDay.DisabledTimes) == 0 {
		return codes
	}
	lo, hi := startDay.DisabledTimes[0], startDay.DisabledTimes[0]
	for _, minute := range startDay.DisabledTimes[1:] {
		if minute < lo {
			lo = minute
		}
		if minute > hi {
			hi = minute
		}
	}
	if slot.StartMinute() >= lo && slot.EndMinute() <= hi {
		codes = append(codes, models.ErrAlreadyBooked)
	}
	return codes
}

// AvailabilityValidator checks each slot against the AvailabilityOracle.
type AvailabilityValidator struct {
	Oracle AvailabilityOracle
	Logger *zap.Logger
}

// Validate records availability errors on item. Oracle failures are per-item and never abort the quote.
func (av AvailabilityValidator) Validate(ctx context.Context, masterID string, slot Slot, item *models.BookingItem) {
	if av.Oracle == nil {
		return
	}
	days, err := av.Oracle.Times(ctx, masterID, slot.Start, slot.End)
	if err != nil {
		if av.Logger != nil {
			av.Logger.Error("failed to load master times",
				zap.String("masterID", masterID), zap.Time("start", slot.Start), zap.Error(err))
		}
		item.AddError(models.ErrAvailabilityUnknown)
		return
	}
	for _, code := range CheckSlot(days, slot) {
		item.AddError(code)
	}
}
