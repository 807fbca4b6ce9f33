package usecase

import (
	"context"
	"testing"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/pkg/logger"
)

func newOperatorUsecase(env *testEnv) *OperatorUsecase {
	var log logger.Logger = nopLogger{}
	return NewOperatorUsecase(env.operators, env.accounts, env.stations, log)
}

func TestCreateProfile(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)
	account := env.seedAccount("acc-op1", "900000009V")
	account.Phone = "+94771234567"
	uc := newOperatorUsecase(env)

	op, err := uc.CreateProfile(context.Background(), CreateOperatorInput{AccountID: "acc-op1", StationID: "st1"})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if op.StationID != "st1" || !op.Active {
		t.Fatalf("unexpected profile: %+v", op)
	}
	if op.Name != account.FullName() || op.Phone != "+94771234567" {
		t.Fatalf("display fields not denormalized: %+v", op)
	}
}

func TestCreateProfile_Duplicate(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)
	env.seedAccount("acc-op1", "900000009V")
	uc := newOperatorUsecase(env)

	if _, err := uc.CreateProfile(context.Background(), CreateOperatorInput{AccountID: "acc-op1", StationID: "st1"}); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	_, err := uc.CreateProfile(context.Background(), CreateOperatorInput{AccountID: "acc-op1", StationID: "st1"})
	if apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("expected conflict for duplicate profile, got %v", err)
	}
}

func TestCreateProfile_MissingReferences(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)
	env.seedAccount("acc-op1", "900000009V")
	uc := newOperatorUsecase(env)

	_, err := uc.CreateProfile(context.Background(), CreateOperatorInput{AccountID: "ghost", StationID: "st1"})
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not-found for unknown account, got %v", err)
	}

	_, err = uc.CreateProfile(context.Background(), CreateOperatorInput{AccountID: "acc-op1", StationID: "ghost"})
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not-found for unknown station, got %v", err)
	}
}

func TestSyncProfile(t *testing.T) {
	env := newTestEnv()
	env.seedStation("st1", 2)
	account := env.seedAccount("acc-op1", "900000009V")
	env.seedOperator("op1", "acc-op1", "st1")
	uc := newOperatorUsecase(env)

	account.FirstName = "Renamed"
	account.Active = false
	if err := uc.SyncProfile(context.Background(), "acc-op1"); err != nil {
		t.Fatalf("SyncProfile: %v", err)
	}

	profile, _ := env.operators.FindByAccountID(context.Background(), "acc-op1")
	if profile.Name != account.FullName() {
		t.Fatalf("name not refreshed: %q", profile.Name)
	}
	if profile.Active {
		t.Fatal("profile should follow account deactivation")
	}

	// Accounts without a profile are a no-op.
	if err := uc.SyncProfile(context.Background(), "no-profile"); err != nil {
		t.Fatalf("SyncProfile without profile: %v", err)
	}
}
