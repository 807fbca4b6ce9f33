package usecase

import (
	"context"
	"testing"
	"time"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
)

func TestGetStationSlots_Grid(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)

	// A fully open day one week out.
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	slots, err := env.slots.GetStationSlots(context.Background(), "st1", date)
	if err != nil {
		t.Fatalf("GetStationSlots: %v", err)
	}

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}

	wantHours := []int{9, 10, 11, 13, 14, 15, 16, 17}
	for i, slot := range slots {
		if slot.StartTime.Hour() != wantHours[i] {
			t.Fatalf("slot %d starts at %02d:00, want %02d:00", i, slot.StartTime.Hour(), wantHours[i])
		}
		if !slot.EndTime.Equal(slot.StartTime.Add(time.Hour)) {
			t.Fatalf("slot %d is not one hour long", i)
		}
		if slot.RemainingCapacity != 2 {
			t.Fatalf("slot %d capacity %d, want 2", i, slot.RemainingCapacity)
		}
		if !slot.IsBookable {
			t.Fatalf("slot %d on an empty future day should be bookable", i)
		}
	}
}

func TestGetStationSlots_CountsActiveBookings(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)

	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	at := date.Add(13 * time.Hour)

	for i, status := range []entity.BookingStatus{entity.BookingApproved, entity.BookingInProgress} {
		if err := env.bookings.Save(context.Background(), &entity.Booking{
			ID:        string(rune('a' + i)),
			StationID: "st1",
			StartTime: at,
			Status:    status,
		}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	// Terminal bookings never consume capacity.
	if err := env.bookings.Save(context.Background(), &entity.Booking{
		ID:        "cancelled",
		StationID: "st1",
		StartTime: at,
		Status:    entity.BookingCancelled,
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	slots, err := env.slots.GetStationSlots(context.Background(), "st1", date)
	if err != nil {
		t.Fatalf("GetStationSlots: %v", err)
	}

	for _, slot := range slots {
		if slot.StartTime.Equal(at) {
			if slot.RemainingCapacity != 0 {
				t.Fatalf("expected full slot at 13:00, remaining %d", slot.RemainingCapacity)
			}
			if slot.IsBookable {
				t.Fatal("full slot must not be bookable")
			}
		} else if slot.RemainingCapacity != 2 {
			t.Fatalf("slot at %s should be untouched, remaining %d", slot.StartTime, slot.RemainingCapacity)
		}
	}
}

func TestGetStationSlots_PastSlotsNotBookable(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)

	// Same day as the clock (Monday 10:00): 09:00 and 10:00 have already
	// started, 11:00 onward has not.
	date := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	slots, err := env.slots.GetStationSlots(context.Background(), "st1", date)
	if err != nil {
		t.Fatalf("GetStationSlots: %v", err)
	}

	for _, slot := range slots {
		wantBookable := slot.StartTime.After(testNow)
		if slot.IsBookable != wantBookable {
			t.Fatalf("slot at %s bookable=%v, want %v", slot.StartTime, slot.IsBookable, wantBookable)
		}
	}
}

func TestGetStationSlots_ClosedDay(t *testing.T) {
	env := newTestEnv()
	station := env.seedStation("st1", 2)
	station.Schedule["monday"] = entity.DaySchedule{Closed: true}
	delete(station.Schedule, "tuesday")

	// Closed entry.
	slots, err := env.slots.GetStationSlots(context.Background(), "st1", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetStationSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}

	// Missing entry behaves the same.
	slots, err = env.slots.GetStationSlots(context.Background(), "st1", time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GetStationSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on an unscheduled day, got %d", len(slots))
	}
}

func TestGetStationSlots_UnknownStation(t *testing.T) {
	env := newTestEnv()

	_, err := env.slots.GetStationSlots(context.Background(), "missing", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}
