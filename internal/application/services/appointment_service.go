package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// AppointmentService handles the appointment lifecycle after booking.
// Every change is validated against the transition table and scoped to
// the caller's own appointments.
type AppointmentService struct {
	repo       repositories.AppointmentRepository
	eventBus   providers.EventBus
	slotLength time.Duration
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(repo repositories.AppointmentRepository, eventBus providers.EventBus, slotLength time.Duration) *AppointmentService {
	return &AppointmentService{
		repo:       repo,
		eventBus:   eventBus,
		slotLength: slotLength,
	}
}

// ListForPatient retrieves a patient's appointments
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string, filter repositories.AppointmentListFilter) ([]*entities.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID, filter)
}

// ListForDoctor retrieves a doctor's appointments
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID string, filter repositories.AppointmentListFilter) ([]*entities.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID, filter)
}

// GetForDoctor retrieves an appointment only if the doctor owns it
func (s *AppointmentService) GetForDoctor(ctx context.Context, id, doctorID string) (*entities.Appointment, error) {
	return s.repo.GetForDoctor(ctx, id, doctorID)
}

// Confirm moves a doctor's appointment to confirmed
func (s *AppointmentService) Confirm(ctx context.Context, id, doctorID string) (*entities.Appointment, error) {
	return s.transitionForDoctor(ctx, id, doctorID, entities.AppointmentStatusConfirmed)
}

// Complete moves a doctor's appointment to completed
func (s *AppointmentService) Complete(ctx context.Context, id, doctorID string) (*entities.Appointment, error) {
	return s.transitionForDoctor(ctx, id, doctorID, entities.AppointmentStatusCompleted)
}

// CancelByDoctor cancels a doctor's appointment
func (s *AppointmentService) CancelByDoctor(ctx context.Context, id, doctorID string) (*entities.Appointment, error) {
	return s.transitionForDoctor(ctx, id, doctorID, entities.AppointmentStatusCancelled)
}

func (s *AppointmentService) transitionForDoctor(ctx context.Context, id, doctorID string, to entities.AppointmentStatus) (*entities.Appointment, error) {
	appointment, err := s.repo.GetForDoctor(ctx, id, doctorID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appointment, to)
}

// CancelByPatient cancels a patient's own appointment. The payment and any
// notes stay behind.
func (s *AppointmentService) CancelByPatient(ctx context.Context, id, patientID string) (*entities.Appointment, error) {
	appointment, err := s.repo.GetForPatient(ctx, id, patientID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, appointment, entities.AppointmentStatusCancelled)
}

func (s *AppointmentService) transition(ctx context.Context, appointment *entities.Appointment, to entities.AppointmentStatus) (*entities.Appointment, error) {
	if !entities.CanTransition(appointment.Status, to) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("appointment cannot move from %s to %s", appointment.Status, to),
		)
	}

	appointment.Status = to
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.publishStatusChange(ctx, appointment)
	return appointment, nil
}

// RescheduleInput carries the new slot for a reschedule.
type RescheduleInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
}

// Reschedule moves a doctor's appointment to a new date and time. Both
// fields are required; the row keeps its identity and the end time is
// recomputed from the start.
func (s *AppointmentService) Reschedule(ctx context.Context, id, doctorID string, input RescheduleInput) (*entities.Appointment, error) {
	if input.Date == "" || input.StartTime == "" {
		return nil, apperrors.NewValidationError("both a new date and a new time are required")
	}

	date, err := time.Parse(time.DateOnly, input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD form")
	}
	if _, err := entities.ParseTimeOfDay(input.StartTime); err != nil {
		return nil, apperrors.NewValidationError("time must be in HH:MM form")
	}

	appointment, err := s.repo.GetForDoctor(ctx, id, doctorID)
	if err != nil {
		return nil, err
	}

	if !entities.CanTransition(appointment.Status, entities.AppointmentStatusRescheduled) {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("appointment cannot move from %s to %s", appointment.Status, entities.AppointmentStatusRescheduled),
		)
	}

	endTime, err := entities.AddToTimeOfDay(input.StartTime, s.slotLength)
	if err != nil {
		return nil, apperrors.NewValidationError("time must be in HH:MM form")
	}

	appointment.AppointmentDate = entities.DateOnly(date)
	appointment.StartTime = input.StartTime
	appointment.EndTime = endTime
	appointment.Status = entities.AppointmentStatusRescheduled

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.publishStatusChange(ctx, appointment)
	return appointment, nil
}

// publishStatusChange emits the status-changed event. Delivery is
// fire-and-forget.
func (s *AppointmentService) publishStatusChange(ctx context.Context, appointment *entities.Appointment) {
	if s.eventBus == nil {
		return
	}

	event := &entities.AppointmentEvent{
		ID:            uuid.New().String(),
		Type:          entities.AppointmentEventStatusChanged,
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Status:        appointment.Status,
		OccurredAt:    time.Now(),
	}

	for _, channel := range []string{
		providers.EventChannelAppointments,
		providers.GetDoctorChannel(appointment.DoctorID),
	} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish appointment event")
		}
	}
}
