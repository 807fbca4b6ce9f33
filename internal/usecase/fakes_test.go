package usecase

import (
	"context"
	"fmt"
	"time"

	"evcharge-service/internal/domain/entity"
	"evcharge-service/pkg/logger"
)

// In-memory fakes shared by the usecase tests. They honor the repository
// contracts (nil, nil on miss; non-terminal filtering) without Mongo.

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (n nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return n
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) add(a *entity.Account) { r.accounts[a.ID] = a }

func (r *fakeAccountRepo) FindByID(_ context.Context, id string) (*entity.Account, error) {
	return r.accounts[id], nil
}

func (r *fakeAccountRepo) FindByNIC(_ context.Context, nic string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.NIC == nic {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

type fakeStationRepo struct {
	stations map[string]*entity.ChargingStation
}

func newFakeStationRepo() *fakeStationRepo {
	return &fakeStationRepo{stations: make(map[string]*entity.ChargingStation)}
}

func (r *fakeStationRepo) add(s *entity.ChargingStation) { r.stations[s.ID] = s }

func (r *fakeStationRepo) FindByID(_ context.Context, id string) (*entity.ChargingStation, error) {
	return r.stations[id], nil
}

type fakeOperatorRepo struct {
	operators []*entity.Operator
}

func (r *fakeOperatorRepo) Save(_ context.Context, op *entity.Operator) error {
	r.operators = append(r.operators, op)
	return nil
}

func (r *fakeOperatorRepo) FindByID(_ context.Context, id string) (*entity.Operator, error) {
	for _, op := range r.operators {
		if op.ID == id {
			return op, nil
		}
	}
	return nil, nil
}

func (r *fakeOperatorRepo) FindByAccountID(_ context.Context, accountID string) (*entity.Operator, error) {
	for _, op := range r.operators {
		if op.AccountID == accountID {
			return op, nil
		}
	}
	return nil, nil
}

func (r *fakeOperatorRepo) FindActiveByStation(_ context.Context, stationID string) ([]*entity.Operator, error) {
	var out []*entity.Operator
	for _, op := range r.operators {
		if op.StationID == stationID && op.Active {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *fakeOperatorRepo) Update(_ context.Context, operator *entity.Operator) error {
	for i, op := range r.operators {
		if op.ID == operator.ID {
			r.operators[i] = operator
			return nil
		}
	}
	return fmt.Errorf("operator %s not found", operator.ID)
}

type fakeReservationRepo struct {
	reservations map[string]*entity.Reservation
	saveErr      error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*entity.Reservation)}
}

func (r *fakeReservationRepo) Save(_ context.Context, res *entity.Reservation) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.reservations[res.ID] = res
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id string) (*entity.Reservation, error) {
	return r.reservations[id], nil
}

func (r *fakeReservationRepo) FindActiveByStationAndOwner(_ context.Context, stationID, ownerID string) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for _, res := range r.reservations {
		if res.StationID == stationID && res.OwnerID == ownerID && !res.Status.Terminal() {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) FindByOwner(_ context.Context, ownerID string) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for _, res := range r.reservations {
		if res.OwnerID == ownerID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *entity.Reservation) error {
	if _, ok := r.reservations[res.ID]; !ok {
		return fmt.Errorf("reservation %s not found", res.ID)
	}
	r.reservations[res.ID] = res
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, id string) error {
	delete(r.reservations, id)
	return nil
}

type fakeBookingRepo struct {
	bookings map[string]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*entity.Booking)}
}

func (r *fakeBookingRepo) Save(_ context.Context, b *entity.Booking) error {
	b.Active = !b.Status.Terminal()
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id string) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) HasActiveAtInstant(_ context.Context, operatorID string, at time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.OperatorID == operatorID && !b.Status.Terminal() && b.StartTime.Equal(at) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CountActiveByStationAt(_ context.Context, stationID string, at time.Time) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.StationID == stationID && !b.Status.Terminal() && b.StartTime.Equal(at) {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) FindByOwnerAndStatus(_ context.Context, ownerID string, status entity.BookingStatus) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.OwnerID == ownerID && b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByOperatorAndStatus(_ context.Context, operatorID string, status entity.BookingStatus) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.OperatorID == operatorID && b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return fmt.Errorf("booking %s not found", b.ID)
	}
	b.Active = !b.Status.Terminal()
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	delete(r.bookings, id)
	return nil
}

type fakePublisher struct {
	created   []*entity.ReservationEvent
	cancelled []*entity.ReservationEvent
	completed []*entity.SessionCompletedEvent
}

func (p *fakePublisher) PublishReservationCreated(_ context.Context, event *entity.ReservationEvent) error {
	p.created = append(p.created, event)
	return nil
}

func (p *fakePublisher) PublishReservationCancelled(_ context.Context, event *entity.ReservationEvent) error {
	p.cancelled = append(p.cancelled, event)
	return nil
}

func (p *fakePublisher) PublishSessionCompleted(_ context.Context, event *entity.SessionCompletedEvent) error {
	p.completed = append(p.completed, event)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*entity.ActiveSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*entity.ActiveSession)}
}

func (s *fakeSessionStore) Save(_ context.Context, session *entity.ActiveSession) error {
	s.sessions[session.BookingID] = session
	return nil
}

func (s *fakeSessionStore) Get(_ context.Context, bookingID string) (*entity.ActiveSession, error) {
	return s.sessions[bookingID], nil
}

func (s *fakeSessionStore) Delete(_ context.Context, bookingID string) error {
	delete(s.sessions, bookingID)
	return nil
}

// testEnv wires the full usecase stack over the in-memory fakes.
type testEnv struct {
	accounts     *fakeAccountRepo
	stations     *fakeStationRepo
	operators    *fakeOperatorRepo
	reservations *fakeReservationRepo
	bookings     *fakeBookingRepo
	sessions     *fakeSessionStore
	events       *fakePublisher
	clock        *fixedClock
	matcher      *OperatorMatcher
	scans        *ScanService
	lifecycle    *ReservationUsecase
	slots        *SlotService
}

// testNow is Monday 2025-03-03 10:00 UTC, inside working hours.
var testNow = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	env := &testEnv{
		accounts:     newFakeAccountRepo(),
		stations:     newFakeStationRepo(),
		operators:    &fakeOperatorRepo{},
		reservations: newFakeReservationRepo(),
		bookings:     newFakeBookingRepo(),
		sessions:     newFakeSessionStore(),
		events:       &fakePublisher{},
		clock:        &fixedClock{now: testNow},
	}
	log := nopLogger{}
	env.matcher = NewOperatorMatcher(env.operators, env.bookings, time.UTC, log)
	env.scans = NewScanService(env.bookings, env.reservations, env.accounts, env.stations, env.operators, env.sessions, env.events, env.clock, log)
	env.lifecycle = NewReservationUsecase(env.accounts, env.stations, env.operators, env.reservations, env.bookings, env.matcher, env.scans, env.events, env.clock, log)
	env.slots = NewSlotService(env.stations, env.bookings, time.UTC, env.clock, log)
	return env
}

func openAllWeek() map[string]entity.DaySchedule {
	schedule := make(map[string]entity.DaySchedule)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		schedule[day] = entity.DaySchedule{Open: "09:00", Close: "18:00"}
	}
	return schedule
}

func (e *testEnv) seedStation(id string, totalSlots int) *entity.ChargingStation {
	station := &entity.ChargingStation{
		ID:         id,
		Name:       "Test Station",
		Address:    "1 Test Way",
		TotalSlots: totalSlots,
		Schedule:   openAllWeek(),
		Active:     true,
	}
	e.stations.add(station)
	return station
}

func (e *testEnv) seedAccount(id, nic string) *entity.Account {
	account := &entity.Account{
		ID:        id,
		FirstName: "Test",
		LastName:  id,
		Email:     id + "@example.com",
		NIC:       nic,
		Role:      entity.RoleUser,
		Active:    true,
	}
	e.accounts.add(account)
	return account
}

func (e *testEnv) seedOperator(id, accountID, stationID string) *entity.Operator {
	op := &entity.Operator{
		ID:        id,
		AccountID: accountID,
		StationID: stationID,
		Name:      "Operator " + id,
		Active:    true,
	}
	e.operators.operators = append(e.operators.operators, op)
	return op
}
