// Package users declares the narrow identity-store contract the auth core
// depends on. The core only reads identity records and triggers timestamp
// updates; everything else about user storage lives behind this interface.
package users

import (
	"context"

	"github.com/parksujin/lifeshare/internal/server/models"
)

// Repository is the identity collaborator.
type Repository interface {
	// FindByID returns the identity record for the given subject identifier,
	// or common.ErrorNotFound when it does not exist.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Create inserts a new identity record. Used by operator tooling and
	// tests; the auth core itself never creates identities.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// UpdateLastLoginAt stamps the last-login time and returns the number of
	// rows affected. Zero rows means the identity vanished between lookup and
	// update.
	UpdateLastLoginAt(ctx context.Context, id string) (int64, error)

	// UpdateLastLogoutAt stamps the last-logout time and returns the number
	// of rows affected.
	UpdateLastLogoutAt(ctx context.Context, id string) (int64, error)
}
