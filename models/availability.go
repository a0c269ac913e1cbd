package models

// DayAvailability describes a master's calendar for one day.
type DayAvailability struct {
	Closed bool `json:"closed"`
	// DisabledTimes are minutes from midnight already taken on that day.
	DisabledTimes []int `json:"disabledTimes,omitempty"`
}

// MasterClosedDate marks a day a master does not work.
type MasterClosedDate struct {
	MasterID string `bson:"masterId" json:"masterId"`
	Date     string `bson:"date" json:"date"` // "2006-01-02"
}

// MasterWorkingDay is the weekly schedule entry for one weekday.
type MasterWorkingDay struct {
	MasterID string `bson:"masterId" json:"masterId"`
	Day      string `bson:"day" json:"day"` // lowercase weekday, e.g. "monday"
	Disabled bool   `bson:"disabled" json:"disabled"`
}
