package sqlite

import (
	"context"
	"time"

	"github.com/radtech/authd/internal/auth/domain"
	"github.com/radtech/authd/internal/auth/store"
)

type usersRepo struct {
	db querier
}

const userColumns = `id, name, email, password_hash, verified,
	verify_otp, verify_otp_expires_at, reset_otp, reset_otp_expires_at,
	created_at, updated_at`

func (r *usersRepo) scanUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var row userRow
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&row.id,
		&row.name,
		&row.email,
		&row.passwordHash,
		&row.verified,
		&row.verifyOTP,
		&row.verifyOTPExp,
		&row.resetOTP,
		&row.resetOTPExp,
		&row.createdAt,
		&row.updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, verified)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Verified,
	)
	return mapConflict(err)
}

func (r *usersRepo) SetVerifyOTP(
	ctx context.Context,
	userID, code string,
	expiresAt time.Time,
) error {
	return r.exec(ctx, `
		UPDATE users
		SET verify_otp = ?, verify_otp_expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		code, expiresAt.UTC(), userID,
	)
}

func (r *usersRepo) MarkVerified(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET verified = 1,
			verify_otp = NULL,
			verify_otp_expires_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		userID,
	)
}

func (r *usersRepo) SetResetOTP(
	ctx context.Context,
	userID, code string,
	expiresAt time.Time,
) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_otp = ?, reset_otp_expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		code, expiresAt.UTC(), userID,
	)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.exec(ctx, `
		UPDATE users
		SET password_hash = ?,
			reset_otp = NULL,
			reset_otp_expires_at = NULL,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		newHash, userID,
	)
}

// exec runs an update that must touch exactly one user, mapping a zero row
// count to ErrNotFound.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
