package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
)

// AccountRepository is the account directory consumed by the engine.
// Lookups return (nil, nil) when no account matches.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	FindByNIC(ctx context.Context, nic string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
}
