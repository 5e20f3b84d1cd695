package entities

import "time"

// Feedback is a patient-submitted rating with an optional comment and an
// optional doctor reference. It is not tied to an appointment.
type Feedback struct {
	ID        string    `json:"id" db:"id"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	DoctorID  *string   `json:"doctor_id,omitempty" db:"doctor_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
