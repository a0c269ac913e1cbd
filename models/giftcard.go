package models

import "time"

// GiftCart is a gift card purchased by (or given to) a user, spendable against bookings.
type GiftCart struct {
	ID         string    `bson:"id" json:"id"`
	GiftCartID string    `bson:"giftCartId" json:"giftCartId"`
	UserID     string    `bson:"userId" json:"userId"`
	Price      float64   `bson:"price" json:"price"`
	Active     bool      `bson:"active" json:"active"`
	ExpiredAt  time.Time `bson:"expiredAt" json:"expiredAt"`
}
