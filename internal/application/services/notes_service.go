package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// NotesService handles consultation notes. One note row exists per
// appointment; writes after the first update it in place.
type NotesService struct {
	repo            repositories.PatientNoteRepository
	appointmentRepo repositories.AppointmentRepository
}

// NewNotesService creates a new notes service
func NewNotesService(repo repositories.PatientNoteRepository, appointmentRepo repositories.AppointmentRepository) *NotesService {
	return &NotesService{
		repo:            repo,
		appointmentRepo: appointmentRepo,
	}
}

// WriteInput carries a notes write.
type WriteInput struct {
	Notes        string `json:"notes"`
	Prescription string `json:"prescription"`
}

// Write upserts the notes and prescription for a doctor's own appointment
func (s *NotesService) Write(ctx context.Context, appointmentID, doctorID string, input WriteInput) (*entities.PatientNote, error) {
	if strings.TrimSpace(input.Notes) == "" {
		return nil, apperrors.NewValidationError("notes are required")
	}

	if _, err := s.appointmentRepo.GetForDoctor(ctx, appointmentID, doctorID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByAppointment(ctx, appointmentID)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	if existing != nil {
		existing.Notes = input.Notes
		existing.Prescription = input.Prescription
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	now := time.Now()
	note := &entities.PatientNote{
		ID:            uuid.New().String(),
		AppointmentID: appointmentID,
		Notes:         input.Notes,
		Prescription:  input.Prescription,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// GetForAppointment retrieves the note for a doctor's own appointment
func (s *NotesService) GetForAppointment(ctx context.Context, appointmentID, doctorID string) (*entities.PatientNote, error) {
	if _, err := s.appointmentRepo.GetForDoctor(ctx, appointmentID, doctorID); err != nil {
		return nil, err
	}
	return s.repo.GetByAppointment(ctx, appointmentID)
}

// ListForPatient retrieves a patient's records, newest first
func (s *NotesService) ListForPatient(ctx context.Context, patientID string) ([]*entities.PatientNote, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
