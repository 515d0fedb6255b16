package repository

import (
	"context"
	"errors"

	"user-admin-backend/internal/features/user/models"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrDuplicatePhone = errors.New("phone already in use")
)

// UserRepository persists User documents. Reads exclude the password hash by
// default; callers that need it opt in through GetByEmailWithPassword.
// Email and phone are unique across all users; Create and Update fail with
// ErrDuplicateEmail/ErrDuplicatePhone when a claim would collide.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error)

	// Update saves the record, re-indexing email/phone when they changed.
	// An empty PasswordHash means "unchanged": the stored hash is carried
	// over, so generic saves can never silently alter credentials.
	Update(ctx context.Context, user *models.User) error

	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.User, error)
}
