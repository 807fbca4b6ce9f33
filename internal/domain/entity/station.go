package entity

import (
	"strings"
	"time"
)

// DaySchedule is one entry of a station's weekly open-hours table.
// Open and Close are wall-clock strings ("09:00"); they gate whether the
// day is open at all, the bookable slot grid itself is the fixed policy in
// the slot service.
type DaySchedule struct {
	Open   string `bson:"open"`
	Close  string `bson:"close"`
	Closed bool   `bson:"closed"`
}

// ChargingStation represents a physical charging location. TotalSlots is
// the number of vehicles the station can charge at the same instant.
type ChargingStation struct {
	ID         string                 `bson:"_id,omitempty"`
	Name       string                 `bson:"name"`
	Address    string                 `bson:"address"`
	City       string                 `bson:"city"`
	TotalSlots int                    `bson:"totalSlots"`
	Schedule   map[string]DaySchedule `bson:"schedule"`
	Active     bool                   `bson:"active"`
	CreatedAt  time.Time              `bson:"createdAt"`
	UpdatedAt  time.Time              `bson:"updatedAt"`
}

// ScheduleFor looks up the schedule entry for a weekday. The schedule map
// is keyed by lowercase English day names ("monday").
func (s *ChargingStation) ScheduleFor(day time.Weekday) (DaySchedule, bool) {
	if s.Schedule == nil {
		return DaySchedule{}, false
	}
	entry, ok := s.Schedule[strings.ToLower(day.String())]
	return entry, ok
}
