package entities

import "time"

// Sentinel filter values that mean "do not filter".
const (
	AllSpecialties = "All Specialties"
	AllLocations   = "All Locations"
	AnyDay         = "Any Day"
)

// DoctorSearchFilter narrows the doctor search. Empty fields and the
// sentinel values above bypass the corresponding filter.
type DoctorSearchFilter struct {
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
	Day       string `json:"day"`
}

// BookingDraft is the in-progress booking selection carried between the
// schedule-selection step and confirmation. It lives in short-lived
// session-scoped storage, never in the database.
type BookingDraft struct {
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	Specialty       string    `json:"specialty"`
	ConsultationFee float64   `json:"consultation_fee"`
	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"created_at"`
}
