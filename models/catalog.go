package models

// Smart rule value types.
const (
	SmartValuePercent  = "percent"
	SmartValueAbsolute = "absolute"
)

// Smart rule directions.
const (
	SmartTypeIncrease = "increase"
	SmartTypeDecrease = "decrease"
)

// ServiceMaster is a master's offer of a service: duration, base pricing and price tiers.
type ServiceMaster struct {
	ID            string      `bson:"id" json:"id"`
	MasterID      string      `bson:"masterId" json:"masterId"`
	ServiceID     string      `bson:"serviceId" json:"serviceId"`
	Interval      int         `bson:"interval" json:"interval"` // minutes
	Pause         int         `bson:"pause" json:"pause"`       // minutes after the service
	Price         float64     `bson:"price" json:"price"`
	Discount      float64     `bson:"discount" json:"discount"`
	CommissionFee float64     `bson:"commissionFee" json:"commissionFee"`
	TotalPrice    float64     `bson:"totalPrice" json:"totalPrice"`
	Prices        []PriceTier `bson:"prices,omitempty" json:"prices,omitempty"`
	Active        bool        `bson:"active" json:"active"`
}

// Duration is the number of minutes the service blocks on the master's calendar.
func (sm ServiceMaster) Duration() int {
	return sm.Interval + sm.Pause
}

// BaseTotal is the stored total price, derived from price and discount when it was never set.
func (sm ServiceMaster) BaseTotal() float64 {
	if sm.TotalPrice > 0 {
		return sm.TotalPrice
	}
	if total := sm.Price - sm.Discount; total > 0 {
		return total
	}
	return 0
}

// Tier returns the price tier with the given id.
func (sm ServiceMaster) Tier(id string) (PriceTier, bool) {
	for _, tier := range sm.Prices {
		if tier.ID == id {
			return tier, true
		}
	}
	return PriceTier{}, false
}

// PriceTier is an alternative price for a service master with optional time-of-day rules.
type PriceTier struct {
	ID    string           `bson:"id" json:"id"`
	Price float64          `bson:"price" json:"price"`
	Smart []SmartPriceRule `bson:"smart,omitempty" json:"smart,omitempty"`
}

// SmartPriceRule adjusts a tier price when the slot falls inside [From, To).
type SmartPriceRule struct {
	From      string  `bson:"from" json:"from"` // "HH:MM"
	To        string  `bson:"to" json:"to"`     // "HH:MM"
	Value     float64 `bson:"value" json:"value"`
	ValueType string  `bson:"valueType" json:"valueType"` // "percent" or "absolute"
	Type      string  `bson:"type" json:"type"`           // "increase" or "decrease"
}

// ServiceExtra is an optional add-on selected alongside a service.
type ServiceExtra struct {
	ID              string  `bson:"id" json:"id"`
	ServiceMasterID string  `bson:"serviceMasterId" json:"serviceMasterId"`
	Title           string  `bson:"title" json:"title"`
	Price           float64 `bson:"price" json:"price"`
	Active          bool    `bson:"active" json:"active"`
}
