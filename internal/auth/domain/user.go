package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string // unique, stored as given (no normalization)
	PasswordHash string // argon2 encoded, never plaintext
	Verified     bool

	// A code and its expiry are always set and cleared together. Consuming a
	// code clears the pair so it can never be replayed.
	VerifyOTP          *string
	VerifyOTPExpiresAt *time.Time
	ResetOTP           *string
	ResetOTPExpiresAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VerifyOTPSet reports whether an email-verification code is outstanding.
func (u User) VerifyOTPSet() bool {
	return u.VerifyOTP != nil && u.VerifyOTPExpiresAt != nil
}

// ResetOTPSet reports whether a password-reset code is outstanding.
func (u User) ResetOTPSet() bool {
	return u.ResetOTP != nil && u.ResetOTPExpiresAt != nil
}
