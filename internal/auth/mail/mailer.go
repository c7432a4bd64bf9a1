package mail

import "context"

// Mailer delivers the transactional emails the auth flow sends. Delivery is
// synchronous: a failed send fails the request that triggered it, there is
// no retry or queueing behind it.
type Mailer interface {
	// SendWelcome greets a freshly registered user.
	SendWelcome(ctx context.Context, toEmail, name string) error

	// SendVerifyOTP delivers an email-verification code.
	SendVerifyOTP(ctx context.Context, toEmail, name, code string) error

	// SendResetOTP delivers a password-reset code.
	SendResetOTP(ctx context.Context, toEmail, name, code string) error
}
