package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/observability"
)

// SlotCheckService answers whether a doctor's slot can still be booked.
//
// The check is advisory: when failOpen is set, a store error is logged and
// counted but the slot is reported available, so bookings keep flowing
// during partial outages. The conditional insert at confirmation time is
// what actually prevents double booking.
type SlotCheckService struct {
	repo     repositories.AppointmentRepository
	failOpen bool
	metrics  *observability.Metrics
}

// NewSlotCheckService creates a new slot check service
func NewSlotCheckService(repo repositories.AppointmentRepository, failOpen bool, metrics *observability.Metrics) *SlotCheckService {
	return &SlotCheckService{
		repo:     repo,
		failOpen: failOpen,
		metrics:  metrics,
	}
}

// IsSlotAvailable reports whether the doctor's slot on the date at the
// start time is free of non-cancelled appointments.
func (s *SlotCheckService) IsSlotAvailable(ctx context.Context, doctorID string, date time.Time, startTime string) (bool, error) {
	taken, err := s.repo.SlotTaken(ctx, doctorID, date, startTime)
	if err != nil {
		if s.metrics != nil {
			s.metrics.AvailabilityErrors.Add(ctx, 1)
		}
		if s.failOpen {
			log.Warn().Err(err).
				Str("doctor_id", doctorID).
				Str("start_time", startTime).
				Msg("slot check failed, treating slot as available")
			return true, nil
		}
		return false, err
	}

	return !taken, nil
}
