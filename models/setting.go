package models

// SettingBookingServiceFee is the settings key holding the per-item booking fee.
const SettingBookingServiceFee = "booking_service_fee"

// Setting is a key/value platform setting.
type Setting struct {
	Key   string `bson:"key" json:"key"`
	Value string `bson:"value" json:"value"`
}
