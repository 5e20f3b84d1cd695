package entities

import "time"

// Patient is the profile linked one-to-one with a patient user.
type Patient struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Age       int       `json:"age" db:"age"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined from the users table for display.
	Name  string `json:"name" db:"name"`
	Email string `json:"email,omitempty" db:"email"`
}
