package models

import "time"

// Blocked is a span of a master's day taken out of service (break, private appointment).
type Blocked struct {
	BlockID   string    `bson:"block_id" json:"block_id"`
	MasterID  string    `bson:"master_id" json:"master_id"`
	Date      string    `bson:"date" json:"date"`   // Date (e.g., "2025-02-25")
	Start     int       `bson:"start" json:"start"` // Start time in minutes from midnight
	End       int       `bson:"end" json:"end"`     // End time in minutes from midnight
	Reason    string    `bson:"reason" json:"reason"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
