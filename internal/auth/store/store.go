package store

import (
	"context"
	"errors"
	"time"

	"github.com/radtech/authd/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. It exposes sub-repositories to keep concerns tidy and testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// Use it for multi-step operations that must be atomic (e.g., checking
	// and consuming an OTP).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user by their exact email. No case folding:
	// emails are unique and compared as stored.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SetVerifyOTP stores an email-verification code with its absolute
	// expiry, replacing any outstanding one (last write wins).
	SetVerifyOTP(ctx context.Context, userID, code string, expiresAt time.Time) error

	// MarkVerified flips verified on and clears the verify code pair.
	MarkVerified(ctx context.Context, userID string) error

	// SetResetOTP stores a password-reset code with its absolute expiry,
	// replacing any outstanding one.
	SetResetOTP(ctx context.Context, userID, code string, expiresAt time.Time) error

	// UpdatePasswordHash sets the password hash and clears the reset code
	// pair in the same statement.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
}
