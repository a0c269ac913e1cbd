package models

import "time"

// ErrorCode is a per-item validation failure returned to the client for display.
type ErrorCode string

const (
	ErrMasterClosed        ErrorCode = "master_closed"
	ErrAlreadyBooked       ErrorCode = "already_booked"
	ErrPriceNotFound       ErrorCode = "price_not_found"
	ErrAvailabilityUnknown ErrorCode = "availability_unknown"
)

// QuoteDateLayout is the wire format for quote timestamps.
const QuoteDateLayout = "2006-01-02 15:04"

// BookingQuoteRequest asks for the price and schedule of a chain of services.
type BookingQuoteRequest struct {
	StartDate    string        `json:"start_date" binding:"required"`
	EndDate      string        `json:"end_date,omitempty"`
	Currency     string        `json:"currency,omitempty"`
	Items        []ItemRequest `json:"data" binding:"required,min=1,dive"`
	GiftCartID   string        `json:"user_gift_cart_id,omitempty"`
	Coupon       string        `json:"coupon,omitempty"`
	UserID       string        `json:"user_id,omitempty"`
	MemberShipID string        `json:"user_member_ship_id,omitempty"`
}

// ItemRequest is one requested service in the chain.
type ItemRequest struct {
	ServiceMasterID string         `json:"service_master_id" binding:"required"`
	PriceTierID     string         `json:"price_id,omitempty"`
	ExtraIDs        []string       `json:"service_extras,omitempty"`
	Note            string         `json:"note,omitempty"`
	Gender          string         `json:"gender,omitempty"`
	CustomData      map[string]any `json:"data,omitempty"`
	Notes           []string       `json:"notes,omitempty"`
}

// BookingItem is the computed slot and price breakdown of one requested service.
type BookingItem struct {
	ServiceMasterID  string         `json:"service_master_id"`
	MasterID         string         `json:"master_id"`
	ServiceID        string         `json:"service_id"`
	PriceTierID      string         `json:"price_id,omitempty"`
	Extras           []ServiceExtra `json:"extras,omitempty"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	Price            float64        `json:"price"`
	Discount         float64        `json:"discount"`
	ServiceFee       float64        `json:"service_fee"`
	CommissionFee    float64        `json:"commission_fee"`
	ExtraPrice       float64        `json:"extra_price"`
	TotalPrice       float64        `json:"total_price"`
	GiftCartPrice    float64        `json:"gift_cart_price,omitempty"`
	UserMemberShipID string         `json:"user_member_ship_id,omitempty"`
	Note             string         `json:"note"`
	Gender           string         `json:"gender"`
	CustomData       map[string]any `json:"data,omitempty"`
	Notes            []string       `json:"notes,omitempty"`
	Errors           []ErrorCode    `json:"errors,omitempty"`
}

// AddError records a validation failure on the item.
func (bi *BookingItem) AddError(code ErrorCode) {
	bi.Errors = append(bi.Errors, code)
}

// Valid reports whether no validation errors were recorded.
func (bi BookingItem) Valid() bool {
	return len(bi.Errors) == 0
}

// ClearPrices zeroes every monetary field of the item.
func (bi *BookingItem) ClearPrices() {
	bi.Price = 0
	bi.Discount = 0
	bi.ServiceFee = 0
	bi.CommissionFee = 0
	bi.ExtraPrice = 0
	bi.TotalPrice = 0
	bi.GiftCartPrice = 0
}

// BookingQuoteResult is the unpersisted quote returned before a booking is confirmed.
type BookingQuoteResult struct {
	Status        bool          `json:"status"`
	Message       string        `json:"message,omitempty"`
	StartDate     string        `json:"start_date,omitempty"`
	EndDate       string        `json:"end_date,omitempty"`
	GiftCartID    string        `json:"user_gift_cart_id,omitempty"`
	Rate          float64       `json:"rate"`
	Price         float64       `json:"price"`
	Discount      float64       `json:"total_discount"`
	ServiceFee    float64       `json:"total_service_fee"`
	CommissionFee float64       `json:"total_commission_fee"`
	GiftCartPrice float64       `json:"total_gift_cart_price"`
	CouponPrice   float64       `json:"coupon_price"`
	TotalPrice    float64       `json:"total_price"`
	Items         []BookingItem `json:"items"`
}
