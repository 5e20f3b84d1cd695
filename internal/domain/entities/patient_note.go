package entities

import "time"

// PatientNote holds a doctor's consultation notes and prescription for one
// appointment. At most one note row exists per appointment; later writes
// update it in place.
type PatientNote struct {
	ID            string    `json:"id" db:"id"`
	AppointmentID string    `json:"appointment_id" db:"appointment_id"`
	Notes         string    `json:"notes" db:"notes"`
	Prescription  string    `json:"prescription" db:"prescription"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Joined for the patient's record view.
	AppointmentDate time.Time `json:"appointment_date,omitempty" db:"appointment_date"`
	DoctorName      string    `json:"doctor_name,omitempty" db:"doctor_name"`
}
