package entities

import "time"

// AppointmentEventType classifies lifecycle events published on the bus.
type AppointmentEventType string

const (
	AppointmentEventBooked        AppointmentEventType = "appointment.booked"
	AppointmentEventStatusChanged AppointmentEventType = "appointment.status_changed"
)

// AppointmentEvent is published whenever an appointment is created or its
// status changes. Consumers are advisory; delivery is fire-and-forget.
type AppointmentEvent struct {
	ID            string               `json:"id"`
	Type          AppointmentEventType `json:"type"`
	AppointmentID string               `json:"appointment_id"`
	DoctorID      string               `json:"doctor_id"`
	PatientID     string               `json:"patient_id"`
	Status        AppointmentStatus    `json:"status"`
	OccurredAt    time.Time            `json:"occurred_at"`
}
