package entity

import "time"

// BookingStatus is the operator-facing lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingApproved   BookingStatus = "Approved"
	BookingInProgress BookingStatus = "InProgress"
	BookingCompleted  BookingStatus = "Completed"
	BookingCancelled  BookingStatus = "Cancelled"
	BookingNoShow     BookingStatus = "NoShow"
)

// Terminal reports whether no further transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingNoShow
}

// BookingStatusFor maps a reservation status to the paired booking status.
// The mapping lives in one place so the two lifecycles cannot drift.
func BookingStatusFor(s ReservationStatus) BookingStatus {
	switch s {
	case ReservationConfirmed:
		return BookingApproved
	case ReservationActive:
		return BookingInProgress
	case ReservationCompleted:
		return BookingCompleted
	case ReservationCancelled:
		return BookingCancelled
	default:
		return BookingPending
	}
}

// DefaultSessionDuration is assumed for history views when a booking has
// no recorded checkout time.
const DefaultSessionDuration = time.Hour

// MaxEnergyKWh caps the energy a single session may record.
const MaxEnergyKWh = 1000

// Booking is the day-of-session record paired one-to-one with a
// Reservation. Active mirrors the status (true while non-terminal) and
// backs the partial unique index that serializes operator slot assignment
// at the store level.
type Booking struct {
	ID              string        `bson:"_id,omitempty"`
	ReservationID   string        `bson:"reservationId"`
	OwnerID         string        `bson:"ownerId"`
	StationID       string        `bson:"stationId"`
	StartTime       time.Time     `bson:"startTime"`
	Status          BookingStatus `bson:"status"`
	OperatorID      string        `bson:"operatorId"`
	Active          bool          `bson:"active"`
	CheckinTime     *time.Time    `bson:"checkinTime,omitempty"`
	CheckoutTime    *time.Time    `bson:"checkoutTime,omitempty"`
	EnergyKWh       *float64      `bson:"energyKwh,omitempty"`
	DurationMinutes *int          `bson:"durationMinutes,omitempty"`
	SessionNotes    string        `bson:"sessionNotes,omitempty"`
	ScanToken       string        `bson:"scanToken,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt"`
}

// SessionView is the projection of a booking returned by history queries.
type SessionView struct {
	BookingID       string        `json:"bookingId"`
	StationID       string        `json:"stationId"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         time.Time     `json:"endTime"`
	Status          BookingStatus `json:"status"`
	EnergyKWh       *float64      `json:"energyKwh,omitempty"`
	DurationMinutes *int          `json:"durationMinutes,omitempty"`
	SessionNotes    string        `json:"sessionNotes,omitempty"`
}

// ToSessionView projects the booking for history reporting. The session
// end defaults to one hour after the start when no checkout was recorded.
func (b *Booking) ToSessionView() SessionView {
	end := b.StartTime.Add(DefaultSessionDuration)
	if b.CheckoutTime != nil {
		end = *b.CheckoutTime
	}
	return SessionView{
		BookingID:       b.ID,
		StationID:       b.StationID,
		StartTime:       b.StartTime,
		EndTime:         end,
		Status:          b.Status,
		EnergyKWh:       b.EnergyKWh,
		DurationMinutes: b.DurationMinutes,
		SessionNotes:    b.SessionNotes,
	}
}
