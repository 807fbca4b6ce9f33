package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{Validation("bad input"), KindValidation},
		{NotFound("missing"), KindNotFound},
		{Conflict("taken"), KindConflict},
		{Unauthorized("nope"), KindUnauthorized},
		{Consistency("broken pair"), KindConsistency},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Fatalf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	inner := Conflict("slot taken")
	outer := fmt.Errorf("creating reservation: %w", inner)

	if KindOf(outer) != KindConflict {
		t.Fatal("kind lost through wrapping")
	}
	if !IsKind(outer, KindConflict) {
		t.Fatal("IsKind lost through wrapping")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("bad base64")
	err := Validation("invalid token format").Wrap(cause)

	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("kind %v, want validation", KindOf(err))
	}
}
