package utils

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"evcharge-service/internal/domain/entity"
)

// EncodeScanToken serializes a booking snapshot into the opaque string
// printed as a QR payload. The encoding is reversible obfuscation, not a
// credential: JSON, base64url, then the string reversed.
func EncodeScanToken(payload *entity.ScanTokenPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scan token payload: %w", err)
	}
	return reverseString(base64.URLEncoding.EncodeToString(data)), nil
}

// DecodeScanToken reverses EncodeScanToken. Any step failing means the
// token is malformed; callers treat that as a client error.
func DecodeScanToken(token string) (*entity.ScanTokenPayload, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	data, err := base64.URLEncoding.DecodeString(reverseString(token))
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	var payload entity.ScanTokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token payload: %w", err)
	}

	if payload.BookingID == "" {
		return nil, fmt.Errorf("token payload has no booking id")
	}

	return &payload, nil
}

func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
