package userRepo

import (
	"context"

	"rotharc/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateProfile sets the editable profile fields.
	UpdateProfile(ctx context.Context, id, firstName, lastName string) error
	// SetAvatar stores the avatar location.
	SetAvatar(ctx context.Context, id, url, publicID string) error
	// AppendNotification pushes a notification onto the user's inbox.
	AppendNotification(ctx context.Context, id string, n models.Notification) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
