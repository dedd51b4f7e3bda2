package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// GenerateOtpCode generates a uniformly random 6-digit code in
// [100000, 999999].
func GenerateOtpCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 100000, nil
}

// GenerateAccessToken generates a 32-byte random token, hex encoded.
func GenerateAccessToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
