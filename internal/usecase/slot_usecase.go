package usecase

import (
	"context"
	"time"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
)

// slotStartHours are the fixed one-hour slots enumerated for every open
// day: 09:00-12:00 and 13:00-18:00, station-local. The lunch gap is never
// a slot. The station's own open/close strings only gate whether the day
// is open at all.
var slotStartHours = []int{9, 10, 11, 13, 14, 15, 16, 17}

// SlotService projects a station's day into a queryable availability grid.
type SlotService struct {
	stationRepo repository.StationRepository
	bookingRepo repository.BookingRepository
	location    *time.Location
	clock       Clock
	logger      logger.Logger
}

// NewSlotService creates a new slot availability service
func NewSlotService(
	stationRepo repository.StationRepository,
	bookingRepo repository.BookingRepository,
	location *time.Location,
	clock Clock,
	logger logger.Logger,
) *SlotService {
	return &SlotService{
		stationRepo: stationRepo,
		bookingRepo: bookingRepo,
		location:    location,
		clock:       clock,
		logger:      logger,
	}
}

// GetStationSlots enumerates the bookable slots of a station for a date
// (year, month and day in station-local time). A closed or unscheduled
// day yields an empty grid, not an error.
func (s *SlotService) GetStationSlots(ctx context.Context, stationID string, date time.Time) ([]entity.SlotAvailability, error) {
	station, err := s.stationRepo.FindByID(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, apperror.NotFound("station %s not found", stationID)
	}

	schedule, ok := station.ScheduleFor(date.Weekday())
	if !ok || schedule.Closed {
		return []entity.SlotAvailability{}, nil
	}

	now := s.clock.Now()
	slots := make([]entity.SlotAvailability, 0, len(slotStartHours))

	for _, hour := range slotStartHours {
		start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, s.location).UTC()

		booked, err := s.bookingRepo.CountActiveByStationAt(ctx, station.ID, start)
		if err != nil {
			return nil, err
		}

		remaining := station.TotalSlots - int(booked)
		if remaining < 0 {
			remaining = 0
		}

		slots = append(slots, entity.SlotAvailability{
			StartTime:         start,
			EndTime:           start.Add(time.Hour),
			RemainingCapacity: remaining,
			IsBookable:        remaining > 0 && start.After(now),
		})
	}

	return slots, nil
}
