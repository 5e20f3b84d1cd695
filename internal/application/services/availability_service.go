package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// AvailabilityService manages doctors' recurring weekly windows.
type AvailabilityService struct {
	repo       repositories.AvailabilityRepository
	doctorRepo repositories.DoctorRepository
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(repo repositories.AvailabilityRepository, doctorRepo repositories.DoctorRepository) *AvailabilityService {
	return &AvailabilityService{
		repo:       repo,
		doctorRepo: doctorRepo,
	}
}

// AddWindowInput carries a new availability window.
type AddWindowInput struct {
	DoctorID  string `json:"doctor_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location"`
}

// AddWindow creates an availability window for a doctor. Overlapping and
// duplicate windows are allowed.
func (s *AvailabilityService) AddWindow(ctx context.Context, input AddWindowInput) (*entities.DoctorAvailability, error) {
	day := strings.TrimSpace(input.Day)
	if entities.WeekdayIndex(day) >= len(entities.Weekdays) {
		return nil, apperrors.NewValidationError("day must be a weekday name")
	}

	start, err := entities.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return nil, apperrors.NewValidationError("start time must be in HH:MM form")
	}
	end, err := entities.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return nil, apperrors.NewValidationError("end time must be in HH:MM form")
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end time must be after start time")
	}

	if strings.TrimSpace(input.Location) == "" {
		return nil, apperrors.NewValidationError("location is required")
	}

	if _, err := s.doctorRepo.GetByID(ctx, input.DoctorID); err != nil {
		return nil, err
	}

	window := &entities.DoctorAvailability{
		ID:        uuid.New().String(),
		DoctorID:  input.DoctorID,
		Day:       day,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Location:  strings.TrimSpace(input.Location),
	}

	if err := s.repo.Create(ctx, window); err != nil {
		return nil, err
	}

	return window, nil
}

// RemoveWindow deletes a window on behalf of its doctor
func (s *AvailabilityService) RemoveWindow(ctx context.Context, id, doctorID string) error {
	return s.repo.DeleteForDoctor(ctx, id, doctorID)
}

// RemoveWindowAsAdmin deletes a window regardless of owner
func (s *AvailabilityService) RemoveWindowAsAdmin(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListForDoctor retrieves a doctor's windows, optionally filtered by
// location
func (s *AvailabilityService) ListForDoctor(ctx context.Context, doctorID, location string) ([]*entities.DoctorAvailability, error) {
	return s.repo.ListByDoctor(ctx, doctorID, location)
}

// Locations lists the distinct locations across all windows
func (s *AvailabilityService) Locations(ctx context.Context) ([]string, error) {
	return s.repo.Locations(ctx)
}

// Weekdays returns the weekday names in calendar order for pickers
func (s *AvailabilityService) Weekdays() []string {
	return entities.Weekdays
}
