package models

import "time"

const (
	CouponFix     = "fix"
	CouponPercent = "percent"
)

// Coupon is a discount code applied to a quote's aggregate total.
type Coupon struct {
	Name      string    `bson:"name" json:"name"`
	Type      string    `bson:"type" json:"type"` // "fix" or "percent"
	Price     float64   `bson:"price" json:"price"`
	Qty       int       `bson:"qty" json:"qty"`
	ExpiredAt time.Time `bson:"expiredAt" json:"expiredAt"`
}
