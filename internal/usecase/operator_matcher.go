package usecase

import (
	"context"
	"time"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
)

// Working-hours policy applied to operator assignment, in station-local
// wall clock. The lunch hour is never assignable.
const (
	workdayOpenHour  = 9
	lunchStartHour   = 12
	lunchEndHour     = 13
	workdayCloseHour = 18
)

// OperatorMatcher finds a free operator for a station at an instant.
type OperatorMatcher struct {
	operatorRepo repository.OperatorRepository
	bookingRepo  repository.BookingRepository
	location     *time.Location
	logger       logger.Logger
}

// NewOperatorMatcher creates a new operator matcher. location is the IANA
// zone stations operate in; instants are stored in UTC and converted
// before the policy check.
func NewOperatorMatcher(
	operatorRepo repository.OperatorRepository,
	bookingRepo repository.BookingRepository,
	location *time.Location,
	logger logger.Logger,
) *OperatorMatcher {
	return &OperatorMatcher{
		operatorRepo: operatorRepo,
		bookingRepo:  bookingRepo,
		location:     location,
		logger:       logger,
	}
}

// FindAvailableOperator returns the first active operator of the station
// with no live booking at exactly the given instant. The scan is linear
// in creation order with no load balancing. A nil operator never comes
// back without an error: off-hours, lunch and full load all surface as a
// conflict the caller must treat as a hard rejection of the slot.
func (m *OperatorMatcher) FindAvailableOperator(ctx context.Context, stationID string, at time.Time) (*entity.Operator, error) {
	if err := m.checkWorkingHours(at); err != nil {
		return nil, err
	}

	operators, err := m.operatorRepo.FindActiveByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	for _, op := range operators {
		busy, err := m.bookingRepo.HasActiveAtInstant(ctx, op.ID, at)
		if err != nil {
			return nil, err
		}
		if !busy {
			return op, nil
		}
	}

	m.logger.Info("no operator available", "stationId", stationID, "at", at.Format(time.RFC3339), "operators", len(operators))
	return nil, apperror.Conflict("no operator is available at station %s for %s", stationID, at.In(m.location).Format("15:04"))
}

// checkWorkingHours rejects instants whose local wall clock falls outside
// [09:00,18:00) or inside the [12:00,13:00) lunch break.
func (m *OperatorMatcher) checkWorkingHours(at time.Time) error {
	local := at.In(m.location)
	hour := local.Hour()

	if hour < workdayOpenHour || hour >= workdayCloseHour {
		return apperror.Conflict(
			"requested time %s is outside operator working hours (%02d:00-%02d:00)",
			local.Format("15:04"), workdayOpenHour, workdayCloseHour,
		)
	}
	if hour >= lunchStartHour && hour < lunchEndHour {
		return apperror.Conflict(
			"requested time %s falls in the operator lunch break (%02d:00-%02d:00)",
			local.Format("15:04"), lunchStartHour, lunchEndHour,
		)
	}
	return nil
}
