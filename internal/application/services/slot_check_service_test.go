package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/clinicbook/clinicbook/internal/application/services"
)

func TestSlotCheckService_IsSlotAvailable(t *testing.T) {
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	t.Run("free slot is available", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewSlotCheckService(repo, true, nil)

		repo.On("SlotTaken", mock.Anything, "doc-1", date, "09:00").Return(false, nil)

		available, err := service.IsSlotAvailable(context.Background(), "doc-1", date, "09:00")

		assert.NoError(t, err)
		assert.True(t, available)
		repo.AssertExpectations(t)
	})

	t.Run("taken slot is not available", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewSlotCheckService(repo, true, nil)

		repo.On("SlotTaken", mock.Anything, "doc-1", date, "09:00").Return(true, nil)

		available, err := service.IsSlotAvailable(context.Background(), "doc-1", date, "09:00")

		assert.NoError(t, err)
		assert.False(t, available)
	})

	t.Run("store error with fail-open reports available", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewSlotCheckService(repo, true, nil)

		repo.On("SlotTaken", mock.Anything, "doc-1", date, "09:00").Return(false, errors.New("connection refused"))

		available, err := service.IsSlotAvailable(context.Background(), "doc-1", date, "09:00")

		assert.NoError(t, err)
		assert.True(t, available)
	})

	t.Run("store error without fail-open propagates", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		service := services.NewSlotCheckService(repo, false, nil)

		repo.On("SlotTaken", mock.Anything, "doc-1", date, "09:00").Return(false, errors.New("connection refused"))

		available, err := service.IsSlotAvailable(context.Background(), "doc-1", date, "09:00")

		assert.Error(t, err)
		assert.False(t, available)
	})
}
