package usecase

import (
	"time"

	"evcharge-service/internal/domain/entity"
)

// HasConflict reports whether the half-open window [start, end) overlaps
// any of the given non-terminal reservations. excludeID lets an update
// ignore the record being modified. Cancelled and completed reservations
// never conflict regardless of what the caller passes in.
func HasConflict(existing []*entity.Reservation, start, end time.Time, excludeID string) bool {
	for _, res := range existing {
		if res.ID == excludeID || res.Status.Terminal() {
			continue
		}
		if windowsOverlap(start, end, res.StartTime, res.EndTime) {
			return true
		}
	}
	return false
}

// windowsOverlap applies the three-way overlap test between two half-open
// intervals: the candidate starts inside the existing one, ends inside
// it, or fully contains it.
func windowsOverlap(candStart, candEnd, exStart, exEnd time.Time) bool {
	startsInside := !candStart.Before(exStart) && candStart.Before(exEnd)
	endsInside := candEnd.After(exStart) && !candEnd.After(exEnd)
	contains := !candStart.After(exStart) && !candEnd.Before(exEnd)
	return startsInside || endsInside || contains
}
