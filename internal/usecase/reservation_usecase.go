package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
)

// Policy windows for the booking lifecycle.
const (
	// maxAdvanceBooking is how far ahead a reservation may start.
	maxAdvanceBooking = 7 * 24 * time.Hour
	// rescheduleLockout freezes a reservation this close to its start
	// for non-admin updates and cancellations.
	rescheduleLockout = 12 * time.Hour
)

// CreateReservationInput is a creation request. Exactly one of
// OwnerAccountID / OwnerNIC must resolve; the NIC path is reserved for
// admins booking on behalf of an owner.
type CreateReservationInput struct {
	OwnerAccountID string
	OwnerNIC       string
	StationID      string
	StartTime      time.Time
	EndTime        time.Time
	Note           string
}

// UpdateReservationInput is a partial patch; nil fields are untouched.
type UpdateReservationInput struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *entity.ReservationStatus
	Note      *string
}

// UserSessions groups a user's booking history for display.
type UserSessions struct {
	Completed []entity.SessionView `json:"completed"`
	Upcoming  []entity.SessionView `json:"upcoming"`
}

// ReservationUsecase owns the paired Reservation/Booking lifecycle. All
// status writes on either record go through its entry points; the pairing
// invariant (operator and booking references set before a reservation is
// visible) is enforced here.
type ReservationUsecase struct {
	accountRepo     repository.AccountRepository
	stationRepo     repository.StationRepository
	operatorRepo    repository.OperatorRepository
	reservationRepo repository.ReservationRepository
	bookingRepo     repository.BookingRepository
	matcher         *OperatorMatcher
	tokens          *ScanService
	events          repository.EventPublisher
	clock           Clock
	locks           *stationLocks
	logger          logger.Logger
}

// NewReservationUsecase creates a new reservation lifecycle manager
func NewReservationUsecase(
	accountRepo repository.AccountRepository,
	stationRepo repository.StationRepository,
	operatorRepo repository.OperatorRepository,
	reservationRepo repository.ReservationRepository,
	bookingRepo repository.BookingRepository,
	matcher *OperatorMatcher,
	tokens *ScanService,
	events repository.EventPublisher,
	clock Clock,
	logger logger.Logger,
) *ReservationUsecase {
	return &ReservationUsecase{
		accountRepo:     accountRepo,
		stationRepo:     stationRepo,
		operatorRepo:    operatorRepo,
		reservationRepo: reservationRepo,
		bookingRepo:     bookingRepo,
		matcher:         matcher,
		tokens:          tokens,
		events:          events,
		clock:           clock,
		locks:           newStationLocks(),
		logger:          logger,
	}
}

// Create validates a reservation request, assigns an operator and
// persists the booking/reservation pair. The booking is written first;
// if the reservation write fails the booking is deleted best-effort so
// no half-pair survives the request.
func (u *ReservationUsecase) Create(ctx context.Context, actor Actor, in CreateReservationInput) (*entity.Reservation, error) {
	owner, err := u.resolveOwner(ctx, actor, in)
	if err != nil {
		return nil, err
	}

	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, apperror.Validation("start and end times are required")
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apperror.Validation("end time must be after start time")
	}
	if in.StartTime.After(u.clock.Now().Add(maxAdvanceBooking)) {
		return nil, apperror.Validation("reservations cannot start more than 7 days in advance")
	}

	station, err := u.stationRepo.FindByID(ctx, in.StationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, apperror.NotFound("station %s not found", in.StationID)
	}
	if !station.Active {
		return nil, apperror.Validation("station %s is not accepting reservations", station.ID)
	}

	unlock := u.locks.lock(station.ID)
	defer unlock()

	existing, err := u.reservationRepo.FindActiveByStationAndOwner(ctx, station.ID, owner.ID)
	if err != nil {
		return nil, err
	}
	if HasConflict(existing, in.StartTime, in.EndTime, "") {
		return nil, apperror.Conflict("you already have a reservation at this station overlapping the requested window")
	}

	operator, err := u.matcher.FindAvailableOperator(ctx, station.ID, in.StartTime)
	if err != nil {
		return nil, err
	}

	reservationID := primitive.NewObjectID().Hex()
	bookingID := primitive.NewObjectID().Hex()

	booking := &entity.Booking{
		ID:            bookingID,
		ReservationID: reservationID,
		OwnerID:       owner.ID,
		StationID:     station.ID,
		StartTime:     in.StartTime,
		Status:        entity.BookingApproved,
		OperatorID:    operator.ID,
	}
	if err := u.bookingRepo.Save(ctx, booking); err != nil {
		return nil, err
	}

	reservation := &entity.Reservation{
		ID:                reservationID,
		OwnerID:           owner.ID,
		StationID:         station.ID,
		StartTime:         in.StartTime,
		EndTime:           in.EndTime,
		Status:            entity.ReservationConfirmed,
		OperatorID:        operator.ID,
		OperatorAccountID: operator.AccountID,
		BookingID:         bookingID,
		Note:              in.Note,
	}
	if err := u.reservationRepo.Save(ctx, reservation); err != nil {
		// Compensate the half-written pair before surfacing the error.
		if delErr := u.bookingRepo.Delete(ctx, bookingID); delErr != nil {
			u.logger.Error("failed to compensate orphaned booking", "bookingId", bookingID, "error", delErr)
		}
		return nil, err
	}

	persisted, err := u.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if persisted == nil || persisted.OperatorID == "" || persisted.BookingID == "" {
		return nil, apperror.Consistency("reservation %s persisted without operator or booking linkage", reservationID)
	}

	u.publishReservationEvent(ctx, persisted, eventCreated)
	u.logger.Info("reservation created",
		"reservationId", persisted.ID, "bookingId", bookingID,
		"stationId", station.ID, "operatorId", operator.ID)
	return persisted, nil
}

// Update applies a partial patch to a reservation and propagates status
// and start-time changes to the paired booking. Without adminOverride the
// record is frozen inside the 12-hour lockout and terminal records are
// immutable. A status change to Confirmed issues a scan token when none
// exists yet.
func (u *ReservationUsecase) Update(ctx context.Context, id string, in UpdateReservationInput, adminOverride bool) (*entity.Reservation, error) {
	reservation, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NotFound("reservation %s not found", id)
	}

	if !adminOverride {
		if err := u.checkMutable(reservation); err != nil {
			return nil, err
		}
	}

	newStart := reservation.StartTime
	newEnd := reservation.EndTime
	if in.StartTime != nil {
		newStart = *in.StartTime
	}
	if in.EndTime != nil {
		newEnd = *in.EndTime
	}
	if !newEnd.After(newStart) {
		return nil, apperror.Validation("end time must be after start time")
	}

	timesChanged := !newStart.Equal(reservation.StartTime) || !newEnd.Equal(reservation.EndTime)
	if timesChanged {
		unlock := u.locks.lock(reservation.StationID)
		defer unlock()

		existing, err := u.reservationRepo.FindActiveByStationAndOwner(ctx, reservation.StationID, reservation.OwnerID)
		if err != nil {
			return nil, err
		}
		if HasConflict(existing, newStart, newEnd, reservation.ID) {
			return nil, apperror.Conflict("the new window overlaps another reservation at this station")
		}
	}

	reservation.StartTime = newStart
	reservation.EndTime = newEnd
	if in.Note != nil {
		reservation.Note = *in.Note
	}
	if in.Status != nil {
		reservation.Status = *in.Status
	}

	if in.Status != nil && *in.Status == entity.ReservationConfirmed && reservation.ScanToken == "" {
		token, err := u.tokens.Issue(ctx, reservation.BookingID)
		if err != nil {
			return nil, err
		}
		reservation.ScanToken = token
	}

	if err := u.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if err := u.propagateToBooking(ctx, reservation); err != nil {
		return nil, err
	}

	u.logger.Info("reservation updated", "reservationId", reservation.ID, "status", reservation.Status)
	return reservation, nil
}

// Cancel moves both paired records to Cancelled. The 12-hour lockout
// applies unless adminOverride; an admin re-cancelling an already
// terminal reservation gets a conflict, not a silent success.
func (u *ReservationUsecase) Cancel(ctx context.Context, id string, adminOverride bool) (*entity.Reservation, error) {
	reservation, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NotFound("reservation %s not found", id)
	}

	if adminOverride {
		if reservation.Status.Terminal() {
			return nil, apperror.Conflict("reservation %s is already %s", id, reservation.Status)
		}
	} else {
		if err := u.checkMutable(reservation); err != nil {
			return nil, err
		}
	}

	reservation.Status = entity.ReservationCancelled
	if err := u.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	if err := u.propagateToBooking(ctx, reservation); err != nil {
		return nil, err
	}

	u.publishReservationEvent(ctx, reservation, eventCancelled)
	u.logger.Info("reservation cancelled", "reservationId", reservation.ID, "adminOverride", adminOverride)
	return reservation, nil
}

// Delete hard-deletes the reservation and its paired booking. This is an
// administrative purge with no time-window restriction; the paired
// delete is best-effort.
func (u *ReservationUsecase) Delete(ctx context.Context, id string) error {
	reservation, err := u.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return apperror.NotFound("reservation %s not found", id)
	}

	if reservation.BookingID != "" {
		if err := u.bookingRepo.Delete(ctx, reservation.BookingID); err != nil {
			u.logger.Warn("failed to delete paired booking", "bookingId", reservation.BookingID, "error", err)
		}
	}

	if err := u.reservationRepo.Delete(ctx, id); err != nil {
		return err
	}

	u.logger.Info("reservation deleted", "reservationId", id)
	return nil
}

// HistoryByNIC lists all reservations of the owner identified by NIC,
// newest first.
func (u *ReservationUsecase) HistoryByNIC(ctx context.Context, nic string) ([]*entity.Reservation, error) {
	owner, err := u.accountRepo.FindByNIC(ctx, nic)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, apperror.NotFound("no account found for NIC %s", nic)
	}
	return u.reservationRepo.FindByOwner(ctx, owner.ID)
}

// SessionsByUser returns a user's completed and upcoming bookings
// projected into session views, each newest first.
func (u *ReservationUsecase) SessionsByUser(ctx context.Context, accountID string) (*UserSessions, error) {
	completed, err := u.bookingRepo.FindByOwnerAndStatus(ctx, accountID, entity.BookingCompleted)
	if err != nil {
		return nil, err
	}
	upcoming, err := u.bookingRepo.FindByOwnerAndStatus(ctx, accountID, entity.BookingApproved)
	if err != nil {
		return nil, err
	}

	sessions := &UserSessions{
		Completed: make([]entity.SessionView, 0, len(completed)),
		Upcoming:  make([]entity.SessionView, 0, len(upcoming)),
	}
	for _, b := range completed {
		sessions.Completed = append(sessions.Completed, b.ToSessionView())
	}
	for _, b := range upcoming {
		sessions.Upcoming = append(sessions.Upcoming, b.ToSessionView())
	}
	return sessions, nil
}

// AssignedSessions lists the bookings assigned to the calling operator
// with the given status, newest first.
func (u *ReservationUsecase) AssignedSessions(ctx context.Context, actor Actor, status entity.BookingStatus) ([]*entity.Booking, error) {
	profile, err := u.operatorRepo.FindByAccountID(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("no operator profile for account %s", actor.AccountID)
	}
	return u.bookingRepo.FindByOperatorAndStatus(ctx, profile.ID, status)
}

// resolveOwner resolves the owning account from the request, by direct
// reference or by NIC. The NIC path is admin-only; both resolving to
// different accounts is a validation failure, a deactivated owner too.
func (u *ReservationUsecase) resolveOwner(ctx context.Context, actor Actor, in CreateReservationInput) (*entity.Account, error) {
	var owner *entity.Account

	if in.OwnerAccountID != "" {
		found, err := u.accountRepo.FindByID(ctx, in.OwnerAccountID)
		if err != nil {
			return nil, err
		}
		owner = found
	}

	if in.OwnerNIC != "" {
		if !actor.Admin() {
			return nil, apperror.Unauthorized("only admins can book on behalf of an owner by NIC")
		}
		found, err := u.accountRepo.FindByNIC(ctx, in.OwnerNIC)
		if err != nil {
			return nil, err
		}
		if owner != nil && found != nil && owner.ID != found.ID {
			return nil, apperror.Validation("account reference and NIC resolve to different owners")
		}
		if owner == nil {
			owner = found
		}
	}

	if owner == nil {
		return nil, apperror.NotFound("owner account not found")
	}
	if !owner.Active {
		return nil, apperror.Validation("owner account %s is deactivated", owner.ID)
	}
	return owner, nil
}

// checkMutable rejects writes to terminal reservations and to
// reservations inside the 12-hour lockout.
func (u *ReservationUsecase) checkMutable(reservation *entity.Reservation) error {
	if reservation.Status.Terminal() {
		return apperror.Conflict("reservation %s is already %s", reservation.ID, reservation.Status)
	}
	if !u.clock.Now().Before(reservation.StartTime.Add(-rescheduleLockout)) {
		return apperror.Conflict("reservation %s can no longer be changed within 12 hours of its start", reservation.ID)
	}
	return nil
}

// propagateToBooking mirrors the reservation's status and start time
// onto the paired booking through the single mapping function.
func (u *ReservationUsecase) propagateToBooking(ctx context.Context, reservation *entity.Reservation) error {
	if reservation.BookingID == "" {
		return apperror.Consistency("reservation %s has no paired booking", reservation.ID)
	}
	booking, err := u.bookingRepo.FindByID(ctx, reservation.BookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperror.Consistency("paired booking %s is missing", reservation.BookingID)
	}

	booking.Status = entity.BookingStatusFor(reservation.Status)
	booking.StartTime = reservation.StartTime
	return u.bookingRepo.Update(ctx, booking)
}

type reservationEventKind int

const (
	eventCreated reservationEventKind = iota
	eventCancelled
)

func (u *ReservationUsecase) publishReservationEvent(ctx context.Context, reservation *entity.Reservation, kind reservationEventKind) {
	if u.events == nil {
		return
	}
	event := &entity.ReservationEvent{
		ReservationID: reservation.ID,
		BookingID:     reservation.BookingID,
		UserID:        reservation.OwnerID,
		StationID:     reservation.StationID,
		OperatorID:    reservation.OperatorID,
		StartTime:     reservation.StartTime,
		Status:        reservation.Status,
		OccurredAt:    u.clock.Now(),
	}

	var err error
	if kind == eventCreated {
		err = u.events.PublishReservationCreated(ctx, event)
	} else {
		err = u.events.PublishReservationCancelled(ctx, event)
	}
	if err != nil {
		u.logger.Warn("failed to publish reservation event", "reservationId", reservation.ID, "error", err)
	}
}
