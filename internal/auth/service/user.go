package service

import (
	"context"
	"errors"

	"github.com/radtech/authd/internal/auth/domain"
	"github.com/radtech/authd/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id. Callers expose only the public
// projection; the hash and OTP fields never leave the HTTP boundary.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
