package repositories

import (
	"context"
	"time"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// AppointmentListFilter narrows appointment listings the way the patient
// and doctor views do.
type AppointmentListFilter string

const (
	FilterNone      AppointmentListFilter = ""
	FilterUpcoming  AppointmentListFilter = "upcoming"
	FilterToday     AppointmentListFilter = "today"
	FilterPast      AppointmentListFilter = "past"
	FilterCancelled AppointmentListFilter = "cancelled"
)

// AppointmentRepository defines the interface for appointment data
// operations.
type AppointmentRepository interface {
	// CreateWithPayment inserts an appointment together with its pending
	// payment in one transaction. The insert is conditional: if a
	// non-cancelled appointment already occupies the same doctor, date and
	// start time, nothing is written and a conflict error is returned.
	CreateWithPayment(ctx context.Context, appointment *entities.Appointment, payment *entities.Payment) error

	// SlotTaken reports whether a non-cancelled appointment exists for the
	// doctor on the calendar date with the exact start time.
	SlotTaken(ctx context.Context, doctorID string, date time.Time, startTime string) (bool, error)

	// GetByID retrieves an appointment by ID.
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// GetForDoctor retrieves an appointment only if the doctor owns it.
	GetForDoctor(ctx context.Context, id, doctorID string) (*entities.Appointment, error)

	// GetForPatient retrieves an appointment only if the patient owns it.
	GetForPatient(ctx context.Context, id, patientID string) (*entities.Appointment, error)

	// Update persists status, schedule and location changes to an existing
	// appointment.
	Update(ctx context.Context, appointment *entities.Appointment) error

	// ListByPatient retrieves a patient's appointments, newest first.
	ListByPatient(ctx context.Context, patientID string, filter AppointmentListFilter) ([]*entities.Appointment, error)

	// ListByDoctor retrieves a doctor's appointments, newest first.
	ListByDoctor(ctx context.Context, doctorID string, filter AppointmentListFilter) ([]*entities.Appointment, error)

	// CountByStatus returns appointment counts grouped by status.
	CountByStatus(ctx context.Context) (map[entities.AppointmentStatus]int, error)

	// Count returns the total number of appointments.
	Count(ctx context.Context) (int, error)
}
