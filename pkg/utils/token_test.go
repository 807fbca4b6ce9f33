package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessToken(t *testing.T) {
	signed, exp, err := NewAccessToken("test-secret", "acc-1", "operator", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %s", exp)
	}

	tok, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse issued token: %v", err)
	}

	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "acc-1" {
		t.Fatalf("sub claim %v, want acc-1", claims["sub"])
	}
	if claims["role"] != "operator" {
		t.Fatalf("role claim %v, want operator", claims["role"])
	}
}
