package usecase

import (
	"context"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"
	"evcharge-service/pkg/logger"
)

// CreateOperatorInput binds an account to a station as an operator.
type CreateOperatorInput struct {
	AccountID string
	StationID string
}

// OperatorUsecase maintains station operator profiles.
type OperatorUsecase struct {
	operatorRepo repository.OperatorRepository
	accountRepo  repository.AccountRepository
	stationRepo  repository.StationRepository
	logger       logger.Logger
}

// NewOperatorUsecase creates a new operator profile manager
func NewOperatorUsecase(
	operatorRepo repository.OperatorRepository,
	accountRepo repository.AccountRepository,
	stationRepo repository.StationRepository,
	logger logger.Logger,
) *OperatorUsecase {
	return &OperatorUsecase{
		operatorRepo: operatorRepo,
		accountRepo:  accountRepo,
		stationRepo:  stationRepo,
		logger:       logger,
	}
}

// CreateProfile binds an active account to a station. At most one
// profile may exist per account; the display fields are denormalized
// from the account at creation time.
func (u *OperatorUsecase) CreateProfile(ctx context.Context, in CreateOperatorInput) (*entity.Operator, error) {
	account, err := u.accountRepo.FindByID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NotFound("account %s not found", in.AccountID)
	}
	if !account.Active {
		return nil, apperror.Validation("account %s is deactivated", in.AccountID)
	}

	station, err := u.stationRepo.FindByID(ctx, in.StationID)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return nil, apperror.NotFound("station %s not found", in.StationID)
	}

	existing, err := u.operatorRepo.FindByAccountID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("an operator profile already exists for account %s", in.AccountID)
	}

	operator := &entity.Operator{
		AccountID: account.ID,
		StationID: station.ID,
		Name:      account.FullName(),
		Email:     account.Email,
		Phone:     account.Phone,
		Active:    true,
	}
	if err := u.operatorRepo.Save(ctx, operator); err != nil {
		return nil, err
	}

	u.logger.Info("operator profile created", "accountId", account.ID, "stationId", station.ID)
	return operator, nil
}

// SyncProfile refreshes the denormalized display fields of an account's
// operator profile after the account changed. A missing profile is not
// an error; most accounts have none.
func (u *OperatorUsecase) SyncProfile(ctx context.Context, accountID string) error {
	profile, err := u.operatorRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	account, err := u.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NotFound("account %s not found", accountID)
	}

	profile.Name = account.FullName()
	profile.Email = account.Email
	profile.Phone = account.Phone
	profile.Active = account.Active
	return u.operatorRepo.Update(ctx, profile)
}

// ListByStation returns the active operators of a station in creation order.
func (u *OperatorUsecase) ListByStation(ctx context.Context, stationID string) ([]*entity.Operator, error) {
	return u.operatorRepo.FindActiveByStation(ctx, stationID)
}
