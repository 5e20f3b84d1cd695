package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicbook/clinicbook/internal/application/services"
	"github.com/clinicbook/clinicbook/internal/domain/entities"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

func TestPaymentService_MarkPaid(t *testing.T) {
	t.Run("settles a pending payment", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		service := services.NewPaymentService(repo)

		payment := &entities.Payment{ID: "pay-1", Amount: 150, Status: entities.PaymentStatusPending}

		repo.On("GetForPatient", mock.Anything, "pay-1", "pat-1").Return(payment, nil)
		repo.On("UpdateStatus", mock.Anything, "pay-1", entities.PaymentStatusPaid).Return(nil)

		updated, err := service.MarkPaid(context.Background(), "pay-1", "pat-1")

		assert.NoError(t, err)
		assert.Equal(t, entities.PaymentStatusPaid, updated.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects paying twice", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		service := services.NewPaymentService(repo)

		payment := &entities.Payment{ID: "pay-1", Status: entities.PaymentStatusPaid}
		repo.On("GetForPatient", mock.Anything, "pay-1", "pat-1").Return(payment, nil)

		_, err := service.MarkPaid(context.Background(), "pay-1", "pat-1")

		assert.True(t, apperrors.IsConflict(err))
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("another patient's payment is not found", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		service := services.NewPaymentService(repo)

		repo.On("GetForPatient", mock.Anything, "pay-1", "pat-2").
			Return(nil, apperrors.NewNotFoundError("payment not found"))

		_, err := service.MarkPaid(context.Background(), "pay-1", "pat-2")

		assert.True(t, apperrors.IsNotFound(err))
	})
}
