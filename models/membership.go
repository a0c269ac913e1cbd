package models

import "time"

const (
	SessionsLimited   = "limited"
	SessionsUnlimited = "unlimited"
)

// MemberShip is a user's prepaid allotment of sessions for a set of services.
type MemberShip struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	Sessions   string    `bson:"sessions" json:"sessions"`
	Remainder  int       `bson:"remainder" json:"remainder"`
	ServiceIDs []string  `bson:"serviceIds" json:"serviceIds"`
	ExpiredAt  time.Time `bson:"expiredAt" json:"expiredAt"`
}

// Covers reports whether the membership includes the service.
func (m MemberShip) Covers(serviceID string) bool {
	for _, id := range m.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// HasSessions reports whether the membership can still be spent.
func (m MemberShip) HasSessions() bool {
	switch m.Sessions {
	case SessionsUnlimited:
		return true
	case SessionsLimited:
		return m.Remainder > 0
	default:
		return false
	}
}
