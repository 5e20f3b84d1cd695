package repositories

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// PaymentRepository defines the interface for payment data operations.
type PaymentRepository interface {
	// GetForPatient retrieves a payment only if its appointment belongs to
	// the patient.
	GetForPatient(ctx context.Context, id, patientID string) (*entities.Payment, error)

	// UpdateStatus persists a payment status change.
	UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus) error

	// ListByPatient retrieves a patient's payments ordered by appointment
	// date, newest first.
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Payment, error)

	// CountByStatus returns the number of payments in the given status.
	CountByStatus(ctx context.Context, status entities.PaymentStatus) (int, error)

	// TotalPaid returns the summed amount of paid payments.
	TotalPaid(ctx context.Context) (float64, error)

	// RevenueByDoctor returns paid amounts grouped by doctor name.
	RevenueByDoctor(ctx context.Context) (map[string]float64, error)
}
