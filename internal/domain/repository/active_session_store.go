package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
)

// ActiveSessionStore caches sessions between check-in and completion for
// quick dashboard access. Get returns (nil, nil) when no entry exists.
type ActiveSessionStore interface {
	Save(ctx context.Context, session *entity.ActiveSession) error
	Get(ctx context.Context, bookingID string) (*entity.ActiveSession, error)
	Delete(ctx context.Context, bookingID string) error
}
