// Package services contains server-side business logic: identity reads and
// the login/logout/renewal orchestration around the credential primitives.
package services

import (
	"context"

	"github.com/parksujin/lifeshare/internal/logging"
	"github.com/parksujin/lifeshare/internal/server/auth"
	"github.com/parksujin/lifeshare/internal/server/models"
	"github.com/parksujin/lifeshare/internal/server/repositories/users"
)

// UserService reads identity records for presentation. The stored email is
// deterministically encrypted; this layer decrypts it before the record
// leaves the server.
type UserService struct {
	repo   users.Repository
	cipher *auth.AES128
	logger logging.Logger
}

func NewUserService(repo users.Repository, cipher *auth.AES128, logger logging.Logger) *UserService {
	return &UserService{repo: repo, cipher: cipher, logger: logger}
}

// Get returns the identity record for the given subject with the email
// decrypted. A failed email decrypt is logged and leaves the field empty
// rather than failing the read.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Email != "" {
		plain, err := s.cipher.Decrypt(user.Email)
		if err != nil {
			s.logger.Warn(ctx, "email decrypt failed", "userId", id)
			user.Email = ""
		} else {
			user.Email = plain
		}
	}

	return user, nil
}
