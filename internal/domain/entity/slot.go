package entity

import "time"

// SlotAvailability is one bookable unit of station time in the
// availability grid. It is a projection, never persisted.
type SlotAvailability struct {
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	RemainingCapacity int       `json:"remainingCapacity"`
	IsBookable        bool      `json:"isBookable"`
}
