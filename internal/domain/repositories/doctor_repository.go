package repositories

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor data operations.
type DoctorRepository interface {
	// Create creates a doctor profile for an existing doctor user.
	Create(ctx context.Context, doctor *entities.Doctor) error

	// CreateWithUser creates the user account and the doctor profile in
	// one transaction. Neither row is committed if either insert fails.
	CreateWithUser(ctx context.Context, user *entities.User, doctor *entities.Doctor) error

	// GetByID retrieves a doctor, with the linked user's name and email.
	GetByID(ctx context.Context, id string) (*entities.Doctor, error)

	// GetByUserID resolves the doctor profile of a doctor user.
	GetByUserID(ctx context.Context, userID string) (*entities.Doctor, error)

	// List retrieves all doctors with their availability windows loaded,
	// ordered by name.
	List(ctx context.Context) ([]*entities.Doctor, error)

	// Update updates the doctor profile and the linked user's display
	// attributes.
	Update(ctx context.Context, doctor *entities.Doctor) error

	// Delete removes the doctor's availability windows, the doctor profile
	// and the linked user account as one unit of work.
	Delete(ctx context.Context, id string) error

	// Specialties lists the distinct specialties currently on record.
	Specialties(ctx context.Context) ([]string, error)
}

// AvailabilityRepository defines the interface for recurring weekly
// availability windows.
type AvailabilityRepository interface {
	// Create persists a window. No overlap check is performed; duplicate
	// and overlapping windows are allowed.
	Create(ctx context.Context, window *entities.DoctorAvailability) error

	// Delete removes a window by id regardless of owner (admin path).
	Delete(ctx context.Context, id string) error

	// DeleteForDoctor removes a window only if it belongs to the doctor.
	DeleteForDoctor(ctx context.Context, id, doctorID string) error

	// ListByDoctor retrieves a doctor's windows ordered by weekday then
	// start time. A non-empty location filters case-insensitively.
	ListByDoctor(ctx context.Context, doctorID, location string) ([]*entities.DoctorAvailability, error)

	// Locations lists the distinct locations across all windows.
	Locations(ctx context.Context) ([]string, error)
}
