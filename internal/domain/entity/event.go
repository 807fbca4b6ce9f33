package entity

import "time"

// ReservationEvent is published when a reservation is created or
// cancelled. Consumers live outside this service.
type ReservationEvent struct {
	ReservationID string            `json:"reservationId"`
	BookingID     string            `json:"bookingId"`
	UserID        string            `json:"userId"`
	StationID     string            `json:"stationId"`
	OperatorID    string            `json:"operatorId"`
	StartTime     time.Time         `json:"startTime"`
	Status        ReservationStatus `json:"status"`
	OccurredAt    time.Time         `json:"occurredAt"`
}

// SessionCompletedEvent is published when a charging session is closed.
type SessionCompletedEvent struct {
	BookingID       string    `json:"bookingId"`
	ReservationID   string    `json:"reservationId"`
	UserID          string    `json:"userId"`
	StationID       string    `json:"stationId"`
	OperatorID      string    `json:"operatorId"`
	EnergyKWh       float64   `json:"energyKwh"`
	DurationMinutes int       `json:"durationMinutes"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// ActiveSession is the cache record kept for a session between check-in
// and completion.
type ActiveSession struct {
	BookingID     string    `json:"bookingId"`
	ReservationID string    `json:"reservationId"`
	StationID     string    `json:"stationId"`
	OperatorID    string    `json:"operatorId"`
	UserID        string    `json:"userId"`
	CheckinTime   time.Time `json:"checkinTime"`
}
