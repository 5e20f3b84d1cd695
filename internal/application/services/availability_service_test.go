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

func TestAvailabilityService_AddWindow(t *testing.T) {
	valid := services.AddWindowInput{
		DoctorID:  "doc-1",
		Day:       "Monday",
		StartTime: "09:00",
		EndTime:   "12:00",
		Location:  "Main Clinic",
	}

	t.Run("creates the window", func(t *testing.T) {
		repo := new(MockAvailabilityRepository)
		doctorRepo := new(MockDoctorRepository)
		service := services.NewAvailabilityService(repo, doctorRepo)

		doctorRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.Doctor{ID: "doc-1"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.DoctorAvailability) bool {
			return w.DoctorID == "doc-1" && w.Day == "Monday" && w.Location == "Main Clinic"
		})).Return(nil)

		window, err := service.AddWindow(context.Background(), valid)

		assert.NoError(t, err)
		assert.NotEmpty(t, window.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a non-weekday day", func(t *testing.T) {
		service := services.NewAvailabilityService(new(MockAvailabilityRepository), new(MockDoctorRepository))

		input := valid
		input.Day = "Someday"

		_, err := service.AddWindow(context.Background(), input)

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects an end time at or before the start", func(t *testing.T) {
		service := services.NewAvailabilityService(new(MockAvailabilityRepository), new(MockDoctorRepository))

		for _, end := range []string{"09:00", "08:00"} {
			input := valid
			input.EndTime = end

			_, err := service.AddWindow(context.Background(), input)

			assert.True(t, apperrors.IsValidation(err), "end %s", end)
		}
	})

	t.Run("requires a location", func(t *testing.T) {
		service := services.NewAvailabilityService(new(MockAvailabilityRepository), new(MockDoctorRepository))

		input := valid
		input.Location = " "

		_, err := service.AddWindow(context.Background(), input)

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("rejects an unknown doctor", func(t *testing.T) {
		doctorRepo := new(MockDoctorRepository)
		service := services.NewAvailabilityService(new(MockAvailabilityRepository), doctorRepo)

		doctorRepo.On("GetByID", mock.Anything, "doc-1").
			Return(nil, apperrors.NewNotFoundError("doctor with id doc-1 not found"))

		_, err := service.AddWindow(context.Background(), valid)

		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestAvailabilityService_RemoveWindow(t *testing.T) {
	t.Run("doctor removal is scoped to the owner", func(t *testing.T) {
		repo := new(MockAvailabilityRepository)
		service := services.NewAvailabilityService(repo, new(MockDoctorRepository))

		repo.On("DeleteForDoctor", mock.Anything, "w-1", "doc-1").Return(nil)

		assert.NoError(t, service.RemoveWindow(context.Background(), "w-1", "doc-1"))
		repo.AssertExpectations(t)
	})

	t.Run("admin removal ignores ownership", func(t *testing.T) {
		repo := new(MockAvailabilityRepository)
		service := services.NewAvailabilityService(repo, new(MockDoctorRepository))

		repo.On("Delete", mock.Anything, "w-1").Return(nil)

		assert.NoError(t, service.RemoveWindowAsAdmin(context.Background(), "w-1"))
		repo.AssertExpectations(t)
	})
}
