package usecase

import (
	"context"

	"github.com/google/uuid"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
	"evcharge-service/pkg/utils"
)

// ScanResult is the outcome of verifying a presented scan token. IsValid
// and Reason are recomputed from the live booking, never from the
// embedded snapshot.
type ScanResult struct {
	Booking *entity.Booking          `json:"booking"`
	Payload *entity.ScanTokenPayload `json:"payload"`
	IsValid bool                     `json:"isValid"`
	Reason  string                   `json:"reason"`
}

// CompleteSessionInput carries the data recorded when a charging session
// is closed.
type CompleteSessionInput struct {
	BookingID string
	EnergyKWh float64
	Notes     string
}

// ScanService issues and verifies booking scan tokens and drives the
// check-in / completion half of the booking lifecycle.
type ScanService struct {
	bookingRepo     repository.BookingRepository
	reservationRepo repository.ReservationRepository
	accountRepo     repository.AccountRepository
	stationRepo     repository.StationRepository
	operatorRepo    repository.OperatorRepository
	sessions        repository.ActiveSessionStore
	events          repository.EventPublisher
	clock           Clock
	logger          logger.Logger
}

// NewScanService creates a new scan token service
func NewScanService(
	bookingRepo repository.BookingRepository,
	reservationRepo repository.ReservationRepository,
	accountRepo repository.AccountRepository,
	stationRepo repository.StationRepository,
	operatorRepo repository.OperatorRepository,
	sessions repository.ActiveSessionStore,
	events repository.EventPublisher,
	clock Clock,
	logger logger.Logger,
) *ScanService {
	return &ScanService{
		bookingRepo:     bookingRepo,
		reservationRepo: reservationRepo,
		accountRepo:     accountRepo,
		stationRepo:     stationRepo,
		operatorRepo:    operatorRepo,
		sessions:        sessions,
		events:          events,
		clock:           clock,
		logger:          logger,
	}
}

// Issue builds a snapshot of the booking, encodes it into the opaque
// scan token and persists the token on the booking.
func (s *ScanService) Issue(ctx context.Context, bookingID string) (string, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return "", err
	}
	if booking == nil {
		return "", apperror.NotFound("booking %s not found", bookingID)
	}

	owner, err := s.accountRepo.FindByID(ctx, booking.OwnerID)
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", apperror.NotFound("owner account %s not found", booking.OwnerID)
	}

	station, err := s.stationRepo.FindByID(ctx, booking.StationID)
	if err != nil {
		return "", err
	}
	if station == nil {
		return "", apperror.NotFound("station %s not found", booking.StationID)
	}

	payload := &entity.ScanTokenPayload{
		BookingID:      booking.ID,
		UserID:         owner.ID,
		UserName:       owner.FullName(),
		UserNIC:        owner.NIC,
		UserPhone:      owner.Phone,
		StationID:      station.ID,
		StationName:    station.Name,
		StationAddress: station.Address,
		StartTime:      booking.StartTime,
		Status:         booking.Status,
		BookedAt:       booking.CreatedAt,
		GeneratedAt:    s.clock.Now(),
		Nonce:          uuid.NewString(),
	}

	token, err := utils.EncodeScanToken(payload)
	if err != nil {
		return "", err
	}

	booking.ScanToken = token
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return "", err
	}

	s.logger.Info("scan token issued", "bookingId", booking.ID)
	return token, nil
}

// Scan decodes a presented token and reports the live validity of the
// booking it names. A token that cannot be decoded is a client error;
// a decoded token whose booking is gone is not-found; a decoded token
// that differs from the one stored on the booking is rejected as stale.
func (s *ScanService) Scan(ctx context.Context, token string) (*ScanResult, error) {
	payload, err := utils.DecodeScanToken(token)
	if err != nil {
		return nil, apperror.Validation("invalid token format").Wrap(err)
	}

	booking, err := s.bookingRepo.FindByID(ctx, payload.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking %s no longer exists", payload.BookingID)
	}

	if booking.ScanToken != token {
		return nil, apperror.Conflict("token does not match current booking record")
	}

	valid, reason := liveValidity(booking.Status)
	return &ScanResult{
		Booking: booking,
		Payload: payload,
		IsValid: valid,
		Reason:  reason,
	}, nil
}

// liveValidity derives token validity from the booking's current status.
func liveValidity(status entity.BookingStatus) (bool, string) {
	switch status {
	case entity.BookingCancelled:
		return false, "booking has been cancelled"
	case entity.BookingCompleted:
		return false, "session already completed"
	case entity.BookingPending:
		return true, "awaiting confirmation"
	case entity.BookingApproved:
		return true, "ready"
	case entity.BookingInProgress:
		return true, "session already active"
	default:
		return true, "valid"
	}
}

// CheckIn verifies the token and transitions an approved booking into a
// running session, stamping the check-in time and caching the session.
func (s *ScanService) CheckIn(ctx context.Context, token string) (*entity.Booking, error) {
	result, err := s.Scan(ctx, token)
	if err != nil {
		return nil, err
	}
	booking := result.Booking

	if booking.Status != entity.BookingApproved {
		return nil, apperror.Conflict("booking %s is not ready for check-in (status %s)", booking.ID, booking.Status)
	}

	now := s.clock.Now()
	booking.Status = entity.BookingInProgress
	booking.CheckinTime = &now
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.syncReservationStatus(ctx, booking.ReservationID, entity.ReservationActive); err != nil {
		return nil, err
	}

	if s.sessions != nil {
		session := &entity.ActiveSession{
			BookingID:     booking.ID,
			ReservationID: booking.ReservationID,
			StationID:     booking.StationID,
			OperatorID:    booking.OperatorID,
			UserID:        booking.OwnerID,
			CheckinTime:   now,
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			s.logger.Warn("failed to cache active session", "bookingId", booking.ID, "error", err)
		}
	}

	s.logger.Info("booking checked in", "bookingId", booking.ID, "operatorId", booking.OperatorID)
	return booking, nil
}

// CompleteSession closes a running session: records energy and notes,
// stamps the checkout time, derives the duration and completes both
// paired records. Non-admin callers must be the assigned, active
// operator of the booking.
func (s *ScanService) CompleteSession(ctx context.Context, actor Actor, in CompleteSessionInput) (*entity.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking %s not found", in.BookingID)
	}

	if booking.Status != entity.BookingInProgress {
		return nil, apperror.Conflict("booking %s has no session in progress (status %s)", booking.ID, booking.Status)
	}

	if !actor.Admin() {
		profile, err := s.operatorRepo.FindByAccountID(ctx, actor.AccountID)
		if err != nil {
			return nil, err
		}
		if profile == nil || !profile.Active || profile.ID != booking.OperatorID {
			return nil, apperror.Unauthorized("only the assigned operator may complete this session")
		}
	}

	if in.EnergyKWh < 0 || in.EnergyKWh > entity.MaxEnergyKWh {
		return nil, apperror.Validation("energy consumed must be between 0 and %d kWh", entity.MaxEnergyKWh)
	}

	now := s.clock.Now()
	booking.Status = entity.BookingCompleted
	booking.CheckoutTime = &now
	booking.EnergyKWh = &in.EnergyKWh
	booking.SessionNotes = in.Notes

	if booking.CheckinTime != nil {
		minutes := int(now.Sub(*booking.CheckinTime).Minutes())
		if minutes < 0 {
			minutes = 0
		}
		booking.DurationMinutes = &minutes
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.syncReservationStatus(ctx, booking.ReservationID, entity.ReservationCompleted); err != nil {
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Delete(ctx, booking.ID); err != nil {
			s.logger.Warn("failed to evict active session", "bookingId", booking.ID, "error", err)
		}
	}

	if s.events != nil {
		duration := 0
		if booking.DurationMinutes != nil {
			duration = *booking.DurationMinutes
		}
		event := &entity.SessionCompletedEvent{
			BookingID:       booking.ID,
			ReservationID:   booking.ReservationID,
			UserID:          booking.OwnerID,
			StationID:       booking.StationID,
			OperatorID:      booking.OperatorID,
			EnergyKWh:       in.EnergyKWh,
			DurationMinutes: duration,
			OccurredAt:      now,
		}
		if err := s.events.PublishSessionCompleted(ctx, event); err != nil {
			s.logger.Warn("failed to publish session completed event", "bookingId", booking.ID, "error", err)
		}
	}

	s.logger.Info("session completed", "bookingId", booking.ID, "energyKwh", in.EnergyKWh)
	return booking, nil
}

// syncReservationStatus moves the paired reservation to the given status.
// A missing pair is tolerated here; the lifecycle manager owns repair.
func (s *ScanService) syncReservationStatus(ctx context.Context, reservationID string, status entity.ReservationStatus) error {
	if reservationID == "" {
		return nil
	}
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if reservation == nil {
		s.logger.Warn("booking has no live reservation pair", "reservationId", reservationID)
		return nil
	}
	reservation.Status = status
	return s.reservationRepo.Update(ctx, reservation)
}
