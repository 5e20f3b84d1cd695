package entities

import "time"

// Session is the server-side login state behind a session token. The
// token is opaque to clients and carried in a cookie.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Profile IDs resolved at login so request handling never re-derives
	// them. Exactly one is set for patient and doctor sessions.
	PatientID string `json:"patient_id,omitempty"`
	DoctorID  string `json:"doctor_id,omitempty"`
}
