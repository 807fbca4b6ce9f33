package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
)

// OperatorRepository manages station operator profiles. FindByID and
// FindByAccountID return (nil, nil) when no profile matches.
// FindActiveByStation returns profiles in creation order; assignment
// scans them first-match.
type OperatorRepository interface {
	Save(ctx context.Context, operator *entity.Operator) error
	FindByID(ctx context.Context, id string) (*entity.Operator, error)
	FindByAccountID(ctx context.Context, accountID string) (*entity.Operator, error)
	FindActiveByStation(ctx context.Context, stationID string) ([]*entity.Operator, error)
	Update(ctx context.Context, operator *entity.Operator) error
}
