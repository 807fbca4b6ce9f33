package entity

import "time"

// ReservationStatus is the owner-facing lifecycle state of a reservation.
type ReservationStatus string

const (
	// ReservationPending is reserved for a future manual-approval flow;
	// the creation path confirms directly.
	ReservationPending   ReservationStatus = "Pending"
	ReservationConfirmed ReservationStatus = "Confirmed"
	ReservationActive    ReservationStatus = "Active"
	ReservationCompleted ReservationStatus = "Completed"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// Reservation is the owner-facing record of an intended charging session.
// StationID and OwnerID are immutable after creation. OperatorID and
// BookingID must both be set before the record is visible to callers; a
// reservation missing either is an invalid intermediate state.
type Reservation struct {
	ID                string            `bson:"_id,omitempty"`
	OwnerID           string            `bson:"ownerId"`
	StationID         string            `bson:"stationId"`
	StartTime         time.Time         `bson:"startTime"`
	EndTime           time.Time         `bson:"endTime"`
	Status            ReservationStatus `bson:"status"`
	ScanToken         string            `bson:"scanToken,omitempty"`
	OperatorID        string            `bson:"operatorId,omitempty"`
	OperatorAccountID string            `bson:"operatorAccountId,omitempty"`
	BookingID         string            `bson:"bookingId,omitempty"`
	Note              string            `bson:"note,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt"`
}
