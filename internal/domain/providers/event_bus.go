package providers

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// appointment lifecycle events.
type EventBus interface {
	// Publish publishes an event to all subscribers.
	Publish(ctx context.Context, channel string, event *entities.AppointmentEvent) error

	// Subscribe subscribes to events on a channel. The returned channel is
	// closed when ctx is cancelled.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.AppointmentEvent, error)

	// Close closes the event bus and all subscriptions.
	Close() error
}

const (
	// EventChannelAppointments carries every appointment event.
	EventChannelAppointments = "appointments:updates"

	// EventChannelDoctorPrefix is the prefix for doctor-scoped channels.
	EventChannelDoctorPrefix = "appointments:doctor:"
)

// GetDoctorChannel returns the channel carrying one doctor's events.
func GetDoctorChannel(doctorID string) string {
	return EventChannelDoctorPrefix + doctorID
}
