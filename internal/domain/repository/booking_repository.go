package repository

import (
	"context"
	"time"

	"evcharge-service/internal/domain/entity"
)

// BookingRepository persists operator-facing bookings. FindByID returns
// (nil, nil) when no document matches. HasActiveAtInstant and
// CountActiveByStationAt only consider non-terminal bookings; the list
// queries return newest-first.
type BookingRepository interface {
	Save(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id string) (*entity.Booking, error)
	HasActiveAtInstant(ctx context.Context, operatorID string, at time.Time) (bool, error)
	CountActiveByStationAt(ctx context.Context, stationID string, at time.Time) (int64, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID string, status entity.BookingStatus) ([]*entity.Booking, error)
	FindByOperatorAndStatus(ctx context.Context, operatorID string, status entity.BookingStatus) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id string) error
}
