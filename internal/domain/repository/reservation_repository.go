package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
)

// ReservationRepository persists owner-facing reservations. FindByID
// returns (nil, nil) when no document matches. FindActiveByStationAndOwner
// returns the owner's non-terminal reservations at a station and feeds the
// time-window conflict check. FindByOwner returns newest-first.
type ReservationRepository interface {
	Save(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id string) (*entity.Reservation, error)
	FindActiveByStationAndOwner(ctx context.Context, stationID, ownerID string) ([]*entity.Reservation, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id string) error
}
