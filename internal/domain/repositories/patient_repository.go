package repositories

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// PatientRepository defines the interface for patient data operations.
type PatientRepository interface {
	// Create creates a patient profile for an existing patient user.
	Create(ctx context.Context, patient *entities.Patient) error

	// CreateWithUser creates the user account and the patient profile in
	// one transaction. Neither row is committed if either insert fails.
	CreateWithUser(ctx context.Context, user *entities.User, patient *entities.Patient) error

	// GetByID retrieves a patient, with the linked user's name and email.
	GetByID(ctx context.Context, id string) (*entities.Patient, error)

	// GetByUserID resolves the patient profile of a patient user.
	GetByUserID(ctx context.Context, userID string) (*entities.Patient, error)

	// List retrieves all patients ordered by name.
	List(ctx context.Context) ([]*entities.Patient, error)

	// Update updates the patient profile and the linked user's name.
	Update(ctx context.Context, patient *entities.Patient) error
}
