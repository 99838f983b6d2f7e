package service

import (
	"context"
	"errors"
	"sync"

	cl "media-catalog/pkg/catelog"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// HashPassword returns the bcrypt hash stored for a user's password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Authenticate returns the user matching username whose stored hash matches
// password. Unknown users and wrong passwords both yield
// ErrInvalidCredentials, and both pay for one bcrypt comparison.
func (s *Service) Authenticate(ctx context.Context, username, password string) (cl.User, error) {
	u, err := s.Users.FindUserByUsername(ctx, username)
	if errors.Is(err, cl.ErrNotFound) {
		dummyHashOnce.Do(func() {
			dummyHash, _ = bcrypt.GenerateFromPassword([]byte("media-catalog"), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return cl.User{}, cl.ErrInvalidCredentials
	}
	if err != nil {
		return cl.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.Logger.Warn("[Authenticate] password mismatch",
			"user_id", u.ID,
		)
		return cl.User{}, cl.ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

// GetUser returns the user with the given id without its password hash.
func (s *Service) GetUser(ctx context.Context, id int) (cl.User, error) {
	u, err := s.Users.GetUser(ctx, id)
	if err != nil {
		return cl.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}
