package entities

import "time"

// PaymentStatus is the closed set of payment states.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is the single charge attached to an appointment. The amount is
// the doctor's consultation fee at booking time and is never re-derived.
type Payment struct {
	ID            string        `json:"id" db:"id"`
	AppointmentID string        `json:"appointment_id" db:"appointment_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Status        PaymentStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`

	// Joined for display.
	AppointmentDate time.Time `json:"appointment_date,omitempty" db:"appointment_date"`
	DoctorName      string    `json:"doctor_name,omitempty" db:"doctor_name"`
}
