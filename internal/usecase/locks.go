package usecase

import "sync"

// stationLocks serializes the read-check-write span of booking creation
// and rescheduling per station. Operators are station-scoped, so a
// per-station critical section also covers operator slot races within
// this process; the partial unique index on active operator slots backs
// this up at the store level.
type stationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newStationLocks() *stationLocks {
	return &stationLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a station and returns the unlock func.
func (s *stationLocks) lock(stationID string) func() {
	s.mu.Lock()
	m, ok := s.locks[stationID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[stationID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
