package entities

import (
	"strings"
	"time"
)

// Doctor is the professional profile linked one-to-one with a doctor user.
type Doctor struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Specialty       string    `json:"specialty" db:"specialty"`
	ConsultationFee float64   `json:"consultation_fee" db:"consultation_fee"`
	Bio             string    `json:"bio" db:"bio"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	// Joined from the users table for display.
	Name  string `json:"name" db:"name"`
	Email string `json:"email,omitempty" db:"email"`

	// Loaded separately; not a column.
	Availabilities []DoctorAvailability `json:"availabilities,omitempty" db:"-"`
}

// DoctorAvailability is a recurring weekly window during which a doctor
// accepts bookings at a location. Overlapping windows are permitted.
type DoctorAvailability struct {
	ID        string `json:"id" db:"id"`
	DoctorID  string `json:"doctor_id" db:"doctor_id"`
	Day       string `json:"day" db:"day"`
	StartTime string `json:"start_time" db:"start_time"`
	EndTime   string `json:"end_time" db:"end_time"`
	Location  string `json:"location" db:"location"`
}

// Weekdays in calendar order, used for pickers and ordering.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex returns the calendar position of a weekday name, or 7 for
// anything unrecognized so it sorts last.
func WeekdayIndex(day string) int {
	for i, d := range Weekdays {
		if strings.EqualFold(strings.TrimSpace(day), d) {
			return i
		}
	}
	return len(Weekdays)
}

// HasLocation reports whether any window matches the location, ignoring case.
func (d *Doctor) HasLocation(location string) bool {
	for _, a := range d.Availabilities {
		if strings.EqualFold(a.Location, location) {
			return true
		}
	}
	return false
}

// HasDay reports whether any window falls on the given weekday, ignoring
// case and surrounding whitespace.
func (d *Doctor) HasDay(day string) bool {
	want := strings.TrimSpace(day)
	for _, a := range d.Availabilities {
		if strings.EqualFold(strings.TrimSpace(a.Day), want) {
			return true
		}
	}
	return false
}
