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

func TestNotesService_Write(t *testing.T) {
	appointment := &entities.Appointment{ID: "apt-1", DoctorID: "doc-1", Status: entities.AppointmentStatusCompleted}

	t.Run("creates the first note row for an appointment", func(t *testing.T) {
		repo := new(MockPatientNoteRepository)
		appointmentRepo := new(MockAppointmentRepository)
		service := services.NewNotesService(repo, appointmentRepo)

		appointmentRepo.On("GetForDoctor", mock.Anything, "apt-1", "doc-1").Return(appointment, nil)
		repo.On("GetByAppointment", mock.Anything, "apt-1").
			Return(nil, apperrors.NewNotFoundError("no notes for appointment"))
		repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.PatientNote) bool {
			return n.AppointmentID == "apt-1" && n.Notes == "Follow up in two weeks" && n.Prescription == "Ibuprofen"
		})).Return(nil)

		note, err := service.Write(context.Background(), "apt-1", "doc-1", services.WriteInput{
			Notes:        "Follow up in two weeks",
			Prescription: "Ibuprofen",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, note.ID)
		repo.AssertExpectations(t)
	})

	t.Run("updates the existing row in place", func(t *testing.T) {
		repo := new(MockPatientNoteRepository)
		appointmentRepo := new(MockAppointmentRepository)
		service := services.NewNotesService(repo, appointmentRepo)

		existing := &entities.PatientNote{ID: "note-1", AppointmentID: "apt-1", Notes: "old"}

		appointmentRepo.On("GetForDoctor", mock.Anything, "apt-1", "doc-1").Return(appointment, nil)
		repo.On("GetByAppointment", mock.Anything, "apt-1").Return(existing, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.PatientNote) bool {
			return n.ID == "note-1" && n.Notes == "new notes"
		})).Return(nil)

		note, err := service.Write(context.Background(), "apt-1", "doc-1", services.WriteInput{
			Notes: "new notes",
		})

		assert.NoError(t, err)
		assert.Equal(t, "note-1", note.ID)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("requires notes text", func(t *testing.T) {
		service := services.NewNotesService(new(MockPatientNoteRepository), new(MockAppointmentRepository))

		_, err := service.Write(context.Background(), "apt-1", "doc-1", services.WriteInput{Notes: "   "})

		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("another doctor's appointment is not found", func(t *testing.T) {
		repo := new(MockPatientNoteRepository)
		appointmentRepo := new(MockAppointmentRepository)
		service := services.NewNotesService(repo, appointmentRepo)

		appointmentRepo.On("GetForDoctor", mock.Anything, "apt-1", "doc-2").
			Return(nil, apperrors.NewNotFoundError("appointment not found"))

		_, err := service.Write(context.Background(), "apt-1", "doc-2", services.WriteInput{Notes: "x"})

		assert.True(t, apperrors.IsNotFound(err))
		repo.AssertNotCalled(t, "Create")
	})
}
