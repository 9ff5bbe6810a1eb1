// Package users declares the repository contract for user accounts and its
// PostgreSQL and SQLite implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/bluecup/internal/server/models"
)

// Repository stores user accounts. Users are never updated or deleted.
type Repository interface {
	// Create inserts user and fills in its ID and CreatedAt. A second user
	// with the same email yields common.ErrDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when the id is unknown.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// Count returns the number of registered users.
	Count(ctx context.Context) (int64, error)
}
