package services

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// PaymentService handles a patient's payments.
type PaymentService struct {
	repo repositories.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo repositories.PaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

// ListForPatient retrieves a patient's payments, newest appointment first
func (s *PaymentService) ListForPatient(ctx context.Context, patientID string) ([]*entities.Payment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// MarkPaid settles a pending payment. The payment must belong to one of
// the patient's appointments; anyone else's payment looks like it does
// not exist.
func (s *PaymentService) MarkPaid(ctx context.Context, id, patientID string) (*entities.Payment, error) {
	payment, err := s.repo.GetForPatient(ctx, id, patientID)
	if err != nil {
		return nil, err
	}

	if payment.Status != entities.PaymentStatusPending {
		return nil, apperrors.NewConflictError("payment is not pending")
	}

	if err := s.repo.UpdateStatus(ctx, payment.ID, entities.PaymentStatusPaid); err != nil {
		return nil, err
	}

	payment.Status = entities.PaymentStatusPaid
	return payment, nil
}
