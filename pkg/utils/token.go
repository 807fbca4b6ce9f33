package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewAccessToken builds and signs an HS256 JWT carrying the account id as
// subject and the account role. The core trusts these claims as supplied
// by the authentication boundary.
func NewAccessToken(secret, accountID, role string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().UTC().Add(ttl)

	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
