package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTP code bounds. Codes are always exactly six ASCII digits.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a one-time code drawn uniformly from [100000, 999999].
// Codes are single-use and paired with an absolute expiry by the caller.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}
