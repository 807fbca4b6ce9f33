package usecase

import (
	"testing"
	"time"

	"evcharge-service/internal/domain/entity"
)

func TestHasConflict(t *testing.T) {
	base := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	existing := []*entity.Reservation{
		{
			ID:        "r1",
			Status:    entity.ReservationConfirmed,
			StartTime: base,
			EndTime:   base.Add(time.Hour),
		},
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical window", base, base.Add(time.Hour), true},
		{"starts inside", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"ends inside", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"contains existing", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"contained by existing", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"ends exactly at start", base.Add(-time.Hour), base, false},
		{"starts exactly at end", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"fully before", base.Add(-3 * time.Hour), base.Add(-2 * time.Hour), false},
		{"fully after", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(existing, tt.start, tt.end, ""); got != tt.want {
				t.Fatalf("HasConflict(%s-%s) = %v, want %v", tt.start.Format("15:04"), tt.end.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestHasConflict_IgnoresTerminalAndExcluded(t *testing.T) {
	base := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	existing := []*entity.Reservation{
		{ID: "r1", Status: entity.ReservationCancelled, StartTime: base, EndTime: base.Add(time.Hour)},
		{ID: "r2", Status: entity.ReservationCompleted, StartTime: base, EndTime: base.Add(time.Hour)},
		{ID: "r3", Status: entity.ReservationConfirmed, StartTime: base, EndTime: base.Add(time.Hour)},
	}

	if HasConflict(existing, base, base.Add(time.Hour), "r3") {
		t.Fatal("expected no conflict when the only live overlap is excluded")
	}
	if !HasConflict(existing, base, base.Add(time.Hour), "") {
		t.Fatal("expected conflict against the live reservation")
	}
}
