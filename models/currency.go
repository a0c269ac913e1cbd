package models

// Currency is an exchange rate relative to the platform's base currency.
type Currency struct {
	Code    string  `bson:"code" json:"code"`
	Rate    float64 `bson:"rate" json:"rate"`
	Default bool    `bson:"default" json:"default"`
	Active  bool    `bson:"active" json:"active"`
}
