package entities

import (
	"time"
)

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	AppointmentStatusBooked      AppointmentStatus = "booked"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// appointmentTransitions is the allowed-edges table. Completed and cancelled
// are terminal. A rescheduled appointment behaves like a fresh booking.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusBooked:      {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusRescheduled},
	AppointmentStatusConfirmed:   {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled},
	AppointmentStatusRescheduled: {AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// Valid reports whether the status is one of the known states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusRescheduled:
		return true
	}
	return false
}

// Appointment is a booked 30-minute slot between a patient and a doctor.
// StartTime and EndTime are times of day in "HH:MM" form; AppointmentDate
// carries the calendar date only.
type Appointment struct {
	ID              string            `json:"id" db:"id"`
	PatientID       string            `json:"patient_id" db:"patient_id"`
	DoctorID        string            `json:"doctor_id" db:"doctor_id"`
	AppointmentDate time.Time         `json:"appointment_date" db:"appointment_date"`
	StartTime       string            `json:"start_time" db:"start_time"`
	EndTime         string            `json:"end_time" db:"end_time"`
	Location        string            `json:"location" db:"location"`
	Status          AppointmentStatus `json:"status" db:"status"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`

	// Joined for display.
	DoctorName  string `json:"doctor_name,omitempty" db:"doctor_name"`
	PatientName string `json:"patient_name,omitempty" db:"patient_name"`
}
