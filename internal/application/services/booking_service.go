package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/observability"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// BookingService drives the three-step booking workflow: search, schedule
// selection and confirmation. The in-progress selection lives in the draft
// store under the caller's session; nothing touches the database until
// confirmation.
type BookingService struct {
	doctorRepo      repositories.DoctorRepository
	availRepo       repositories.AvailabilityRepository
	appointmentRepo repositories.AppointmentRepository
	slotCheck       *SlotCheckService
	draftStore      providers.BookingDraftStore
	eventBus        providers.EventBus
	metrics         *observability.Metrics
	slotLength      time.Duration
	draftTTL        time.Duration
}

// NewBookingService creates a new booking service
func NewBookingService(
	doctorRepo repositories.DoctorRepository,
	availRepo repositories.AvailabilityRepository,
	appointmentRepo repositories.AppointmentRepository,
	slotCheck *SlotCheckService,
	draftStore providers.BookingDraftStore,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
	slotLength time.Duration,
	draftTTL time.Duration,
) *BookingService {
	return &BookingService{
		doctorRepo:      doctorRepo,
		availRepo:       availRepo,
		appointmentRepo: appointmentRepo,
		slotCheck:       slotCheck,
		draftStore:      draftStore,
		eventBus:        eventBus,
		metrics:         metrics,
		slotLength:      slotLength,
		draftTTL:        draftTTL,
	}
}

// SearchResult is the doctor search page payload: matching doctors plus
// the picker options.
type SearchResult struct {
	Doctors     []*entities.Doctor `json:"doctors"`
	Specialties []string           `json:"specialties"`
	Locations   []string           `json:"locations"`
	Days        []string           `json:"days"`
}

func filterBypassed(value, sentinel string) bool {
	return value == "" || strings.EqualFold(strings.TrimSpace(value), sentinel)
}

// SearchDoctors lists doctors matching the filter. Sentinel values and
// empty fields bypass their filter; the remaining filters AND together.
func (s *BookingService) SearchDoctors(ctx context.Context, filter entities.DoctorSearchFilter) (*SearchResult, error) {
	doctors, err := s.doctorRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := []*entities.Doctor{}
	for _, doctor := range doctors {
		if !filterBypassed(filter.Specialty, entities.AllSpecialties) &&
			!strings.EqualFold(doctor.Specialty, strings.TrimSpace(filter.Specialty)) {
			continue
		}
		if !filterBypassed(filter.Location, entities.AllLocations) && !doctor.HasLocation(filter.Location) {
			continue
		}
		if !filterBypassed(filter.Day, entities.AnyDay) && !doctor.HasDay(filter.Day) {
			continue
		}
		matched = append(matched, doctor)
	}

	specialties, err := s.doctorRepo.Specialties(ctx)
	if err != nil {
		return nil, err
	}

	locations, err := s.availRepo.Locations(ctx)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Doctors:     matched,
		Specialties: specialties,
		Locations:   locations,
		Days:        entities.Weekdays,
	}, nil
}

// SelectScheduleInput carries the schedule-selection step fields. Date and
// StartTime may be empty while the patient is still choosing.
type SelectScheduleInput struct {
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	Location  string `json:"location"`
}

// ScheduleSelection is the schedule-selection step payload. Draft is set
// once all fields were chosen and the slot was free.
type ScheduleSelection struct {
	Doctor  *entities.Doctor               `json:"doctor"`
	Windows []*entities.DoctorAvailability `json:"windows"`
	Draft   *entities.BookingDraft         `json:"draft,omitempty"`
}

// SelectSchedule shows a doctor's windows and, once a full slot is chosen,
// verifies it and stores the draft under the session.
func (s *BookingService) SelectSchedule(ctx context.Context, sessionID, patientID string, input SelectScheduleInput) (*ScheduleSelection, error) {
	doctor, err := s.doctorRepo.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}

	windows, err := s.availRepo.ListByDoctor(ctx, doctor.ID, input.Location)
	if err != nil {
		return nil, err
	}

	selection := &ScheduleSelection{
		Doctor:  doctor,
		Windows: windows,
	}

	if input.Date == "" || input.StartTime == "" {
		return selection, nil
	}

	date, err := time.Parse(time.DateOnly, input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD form")
	}
	if _, err := entities.ParseTimeOfDay(input.StartTime); err != nil {
		return nil, apperrors.NewValidationError("time must be in HH:MM form")
	}

	available, err := s.slotCheck.IsSlotAvailable(ctx, doctor.ID, date, input.StartTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.NewConflictError("the selected slot is already booked")
	}

	draft := &entities.BookingDraft{
		PatientID:       patientID,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		Specialty:       doctor.Specialty,
		ConsultationFee: doctor.ConsultationFee,
		AppointmentDate: entities.DateOnly(date),
		StartTime:       input.StartTime,
		Location:        input.Location,
		CreatedAt:       time.Now(),
	}

	if err := s.draftStore.Save(ctx, sessionID, draft, s.draftTTL); err != nil {
		return nil, err
	}

	selection.Draft = draft
	return selection, nil
}

// PendingDraft returns the session's draft for the confirmation page
func (s *BookingService) PendingDraft(ctx context.Context, sessionID string) (*entities.BookingDraft, error) {
	return s.draftStore.Get(ctx, sessionID)
}

// Confirmation is the booking confirmation payload.
type Confirmation struct {
	Appointment *entities.Appointment `json:"appointment"`
	Payment     *entities.Payment     `json:"payment"`
	Message     string                `json:"message"`
}

// Confirm turns the session's draft into an appointment with its pending
// payment. The insert is conditional on the slot still being free, so a
// lost race surfaces as a conflict and nothing is written.
func (s *BookingService) Confirm(ctx context.Context, sessionID, patientID string) (*Confirmation, error) {
	draft, err := s.draftStore.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError("your booking selection has expired, please start over")
		}
		return nil, err
	}

	if draft.PatientID != patientID {
		return nil, apperrors.NewNotFoundError("your booking selection has expired, please start over")
	}

	available, err := s.slotCheck.IsSlotAvailable(ctx, draft.DoctorID, draft.AppointmentDate, draft.StartTime)
	if err != nil {
		return nil, err
	}
	if !available {
		if s.metrics != nil {
			s.metrics.SlotConflicts.Add(ctx, 1)
		}
		return nil, apperrors.NewConflictError("the selected slot is no longer available")
	}

	endTime, err := entities.AddToTimeOfDay(draft.StartTime, s.slotLength)
	if err != nil {
		return nil, apperrors.NewValidationError("time must be in HH:MM form")
	}

	now := time.Now()
	appointment := &entities.Appointment{
		ID:              uuid.New().String(),
		PatientID:       draft.PatientID,
		DoctorID:        draft.DoctorID,
		AppointmentDate: draft.AppointmentDate,
		StartTime:       draft.StartTime,
		EndTime:         endTime,
		Location:        draft.Location,
		Status:          entities.AppointmentStatusBooked,
		CreatedAt:       now,
		UpdatedAt:       now,
		DoctorName:      draft.DoctorName,
	}

	payment := &entities.Payment{
		ID:            uuid.New().String(),
		AppointmentID: appointment.ID,
		Amount:        draft.ConsultationFee,
		Status:        entities.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.appointmentRepo.CreateWithPayment(ctx, appointment, payment); err != nil {
		if apperrors.IsConflict(err) && s.metrics != nil {
			s.metrics.SlotConflicts.Add(ctx, 1)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsConfirmed.Add(ctx, 1)
	}

	if err := s.draftStore.Delete(ctx, sessionID); err != nil {
		log.Warn().Err(err).Msg("failed to discard booking draft after confirmation")
	}

	s.publishBooked(ctx, appointment)

	message := fmt.Sprintf(
		"Appointment booked with %s on %s at %s.",
		draft.DoctorName,
		appointment.AppointmentDate.Format("Monday, 2 January 2006"),
		appointment.StartTime,
	)

	return &Confirmation{
		Appointment: appointment,
		Payment:     payment,
		Message:     message,
	}, nil
}

// publishBooked emits the booked event. Delivery is fire-and-forget.
func (s *BookingService) publishBooked(ctx context.Context, appointment *entities.Appointment) {
	if s.eventBus == nil {
		return
	}

	event := &entities.AppointmentEvent{
		ID:            uuid.New().String(),
		Type:          entities.AppointmentEventBooked,
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
			log.Warn().Err(err).Str("channel", channel).Msg("failed to publish booking event")
		}
	}
}
