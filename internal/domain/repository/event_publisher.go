package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
)

// EventPublisher emits domain events to the message broker. Publishing is
// best-effort from the caller's point of view: failures are logged and do
// not fail the request.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event *entity.ReservationEvent) error
	PublishReservationCancelled(ctx context.Context, event *entity.ReservationEvent) error
	PublishSessionCompleted(ctx context.Context, event *entity.SessionCompletedEvent) error
}
