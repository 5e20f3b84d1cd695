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

func TestFeedbackService_Submit(t *testing.T) {
	t.Run("stores general feedback without a doctor", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		service := services.NewFeedbackService(repo, new(MockDoctorRepository))

		repo.On("Create", mock.Anything, mock.MatchedBy(func(f *entities.Feedback) bool {
			return f.PatientID == "pat-1" && f.Rating == 4 && f.DoctorID == nil && f.Comment == "Great service"
		})).Return(nil)

		feedback, err := service.Submit(context.Background(), "pat-1", services.SubmitInput{
			Rating:  4,
			Comment: "  Great service ",
		})

		assert.NoError(t, err)
		assert.Nil(t, feedback.DoctorID)
		repo.AssertExpectations(t)
	})

	t.Run("verifies the doctor when one is named", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		doctorRepo := new(MockDoctorRepository)
		service := services.NewFeedbackService(repo, doctorRepo)

		doctorRepo.On("GetByID", mock.Anything, "doc-1").Return(&entities.Doctor{ID: "doc-1"}, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(f *entities.Feedback) bool {
			return f.DoctorID != nil && *f.DoctorID == "doc-1"
		})).Return(nil)

		feedback, err := service.Submit(context.Background(), "pat-1", services.SubmitInput{
			DoctorID: "doc-1",
			Rating:   5,
		})

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", *feedback.DoctorID)
	})

	t.Run("rejects an unknown doctor", func(t *testing.T) {
		repo := new(MockFeedbackRepository)
		doctorRepo := new(MockDoctorRepository)
		service := services.NewFeedbackService(repo, doctorRepo)

		doctorRepo.On("GetByID", mock.Anything, "doc-x").
			Return(nil, apperrors.NewNotFoundError("doctor with id doc-x not found"))

		_, err := service.Submit(context.Background(), "pat-1", services.SubmitInput{
			DoctorID: "doc-x",
			Rating:   5,
		})

		assert.True(t, apperrors.IsNotFound(err))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects ratings outside 1 to 5", func(t *testing.T) {
		service := services.NewFeedbackService(new(MockFeedbackRepository), new(MockDoctorRepository))

		for _, rating := range []int{0, -1, 6} {
			_, err := service.Submit(context.Background(), "pat-1", services.SubmitInput{Rating: rating})
			assert.True(t, apperrors.IsValidation(err), "rating %d", rating)
		}
	})
}
