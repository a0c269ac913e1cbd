package quote

import (
	"context"
	"fmt"
	"time"

	"glowbook/models"
)

// Qualifies reports whether the membership pays for the service.
func Qualifies(m models.MemberShip, serviceID string) bool {
	return m.Covers(serviceID) && m.HasSessions()
}

// MembershipOffsetter zeroes the cost of items paid for by a membership.
// Remaining sessions are only spent when the booking is committed.
type MembershipOffsetter struct {
	Store MembershipStore
}

// Offset applies the first qualifying membership to item. It reports whether the item was covered.
func (mo MembershipOffsetter) Offset(ctx context.Context, userID, membershipID string, now time.Time, item *models.BookingItem) (bool, error) {
	if mo.Store == nil || userID == "" {
		return false, nil
	}
	if membershipID == "" {
		membershipID = item.UserMemberShipID
	}
	memberships, err := mo.Store.FindActive(ctx, userID, membershipID, item.ServiceID, now)
	if err != nil {
		return false, fmt.Errorf("failed to load memberships: %w", err)
	}
	for _, m := range memberships {
		if !m.ExpiredAt.IsZero() && !m.ExpiredAt.After(now) {
			continue
		}
		if !Qualifies(m, item.ServiceID) {
			continue
		}
		item.ClearPrices()
		item.UserMemberShipID = m.ID
		return true, nil
	}
	return false, nil
}
