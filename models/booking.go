package models

import "time"

// Booking is a committed appointment as read back from storage to compute a master's disabled times.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	MasterID        string    `bson:"masterId" json:"masterId"`
	ServiceMasterID string    `bson:"serviceMasterId" json:"serviceMasterId"`
	UserID          string    `bson:"userId" json:"userId"`
	StartDate       time.Time `bson:"startDate" json:"startDate"`
	EndDate         time.Time `bson:"endDate" json:"endDate"`
	Status          string    `bson:"status" json:"status"` // e.g., "new", "booked", "canceled"
}

const BookingStatusCanceled = "canceled"
