package repositories

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// EmailExists reports whether a user with the email already exists.
	EmailExists(ctx context.Context, email string) (bool, error)

	// Update updates a user's mutable attributes (name, email).
	Update(ctx context.Context, user *entities.User) error
}
