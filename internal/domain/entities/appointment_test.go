package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("allows the documented lifecycle moves", func(t *testing.T) {
		allowed := []struct {
			from, to AppointmentStatus
		}{
			{AppointmentStatusBooked, AppointmentStatusConfirmed},
			{AppointmentStatusBooked, AppointmentStatusCancelled},
			{AppointmentStatusBooked, AppointmentStatusRescheduled},
			{AppointmentStatusConfirmed, AppointmentStatusCompleted},
			{AppointmentStatusConfirmed, AppointmentStatusCancelled},
			{AppointmentStatusConfirmed, AppointmentStatusRescheduled},
			{AppointmentStatusRescheduled, AppointmentStatusConfirmed},
			{AppointmentStatusRescheduled, AppointmentStatusCompleted},
			{AppointmentStatusRescheduled, AppointmentStatusCancelled},
			{AppointmentStatusRescheduled, AppointmentStatusRescheduled},
		}

		for _, tc := range allowed {
			assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
		}
	})

	t.Run("rejects moves out of terminal states", func(t *testing.T) {
		for _, terminal := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled} {
			for _, to := range []AppointmentStatus{
				AppointmentStatusBooked,
				AppointmentStatusConfirmed,
				AppointmentStatusCompleted,
				AppointmentStatusCancelled,
				AppointmentStatusRescheduled,
			} {
				assert.False(t, CanTransition(terminal, to), "%s -> %s should be rejected", terminal, to)
			}
		}
	})

	t.Run("rejects skipping confirmation to completed", func(t *testing.T) {
		assert.False(t, CanTransition(AppointmentStatusBooked, AppointmentStatusCompleted))
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		assert.False(t, CanTransition(AppointmentStatus("unknown"), AppointmentStatusConfirmed))
	})
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusCompleted.Terminal())
	assert.True(t, AppointmentStatusCancelled.Terminal())
	assert.False(t, AppointmentStatusBooked.Terminal())
	assert.False(t, AppointmentStatusConfirmed.Terminal())
	assert.False(t, AppointmentStatusRescheduled.Terminal())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		AppointmentStatusBooked,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusRescheduled,
	} {
		assert.True(t, s.Valid())
	}
	assert.False(t, AppointmentStatus("pending").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}
