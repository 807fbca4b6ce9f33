package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
)

// StationRepository is the station directory consumed by the engine.
// FindByID returns (nil, nil) when no station matches.
type StationRepository interface {
	FindByID(ctx context.Context, id string) (*entity.ChargingStation, error)
}
