package entity

import "time"

// ScanTokenPayload is the snapshot embedded in a booking's scan token.
// Validity is always recomputed from the live booking on scan; the
// snapshot only serves display and the replay check.
type ScanTokenPayload struct {
	BookingID      string        `json:"bookingId"`
	UserID         string        `json:"userId"`
	UserName       string        `json:"userName"`
	UserNIC        string        `json:"userNic"`
	UserPhone      string        `json:"userPhone"`
	StationID      string        `json:"stationId"`
	StationName    string        `json:"stationName"`
	StationAddress string        `json:"stationAddress"`
	StartTime      time.Time     `json:"startTime"`
	Status         BookingStatus `json:"status"`
	BookedAt       time.Time     `json:"bookedAt"`
	GeneratedAt    time.Time     `json:"generatedAt"`
	Nonce          string        `json:"nonce"`
}
