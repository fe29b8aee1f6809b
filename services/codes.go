package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Verification code format: fixed prefix plus a random suffix drawn from an
// alphabet with the visually confusable characters (0/O, 1/I) removed. With
// 32 symbols over 12 positions, collisions across any realistic certificate
// volume are negligible; the unique index catches the rest.
const (
	codePrefix   = "CSP-"
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 12
)

// NewVerificationCode generates a fresh certificate verification code.
func NewVerificationCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	suffix := make([]byte, codeLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate verification code: %v", err)
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return codePrefix + string(suffix), nil
}
