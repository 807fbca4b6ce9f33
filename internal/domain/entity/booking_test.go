package entity

import (
	"testing"
	"time"
)

func TestBookingStatusFor(t *testing.T) {
	tests := []struct {
		reservation ReservationStatus
		want        BookingStatus
	}{
		{ReservationPending, BookingPending},
		{ReservationConfirmed, BookingApproved},
		{ReservationActive, BookingInProgress},
		{ReservationCompleted, BookingCompleted},
		{ReservationCancelled, BookingCancelled},
	}

	for _, tt := range tests {
		if got := BookingStatusFor(tt.reservation); got != tt.want {
			t.Fatalf("BookingStatusFor(%s) = %s, want %s", tt.reservation, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []BookingStatus{BookingCompleted, BookingCancelled, BookingNoShow} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{BookingPending, BookingApproved, BookingInProgress} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}

	for _, s := range []ReservationStatus{ReservationCompleted, ReservationCancelled} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationActive} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestToSessionView(t *testing.T) {
	start := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		ID:        "b1",
		StationID: "st1",
		StartTime: start,
		Status:    BookingApproved,
	}

	view := booking.ToSessionView()
	if !view.EndTime.Equal(start.Add(DefaultSessionDuration)) {
		t.Fatalf("default end %s, want start plus one hour", view.EndTime)
	}

	checkout := start.Add(90 * time.Minute)
	booking.CheckoutTime = &checkout
	view = booking.ToSessionView()
	if !view.EndTime.Equal(checkout) {
		t.Fatalf("end %s, want recorded checkout %s", view.EndTime, checkout)
	}
}
