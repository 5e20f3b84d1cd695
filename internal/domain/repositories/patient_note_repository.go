package repositories

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// PatientNoteRepository defines the interface for consultation note
// operations.
type PatientNoteRepository interface {
	// GetByAppointment retrieves the note row for an appointment, if any.
	GetByAppointment(ctx context.Context, appointmentID string) (*entities.PatientNote, error)

	// Create inserts the first note row for an appointment.
	Create(ctx context.Context, note *entities.PatientNote) error

	// Update rewrites the notes and prescription of an existing row.
	Update(ctx context.Context, note *entities.PatientNote) error

	// ListByPatient retrieves a patient's records ordered by appointment
	// date, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]*entities.PatientNote, error)
}
