package database_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func loadSchema(t *testing.T) string {
	t.Helper()
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	return string(schema)
}

func tableDDL(t *testing.T, schema, table string) string {
	t.Helper()
	marker := "CREATE TABLE IF NOT EXISTS " + table + " ("
	start := strings.Index(schema, marker)
	if start < 0 {
		t.Fatalf("table %s not found in schema", table)
	}
	rest := schema[start:]
	end := strings.Index(rest, ");")
	if end < 0 {
		t.Fatalf("unterminated definition for table %s", table)
	}
	return rest[:end]
}

func TestAppointmentOwnedRowsFollowTheirAppointment(t *testing.T) {
	schema := loadSchema(t)

	payments := tableDDL(t, schema, "payments")
	assert.Contains(t, payments, "REFERENCES appointments(id) ON DELETE CASCADE")

	notes := tableDDL(t, schema, "patient_notes")
	assert.Contains(t, notes, "REFERENCES appointments(id) ON DELETE CASCADE")
}

func TestFeedbackOutlivesDoctorRemoval(t *testing.T) {
	feedback := tableDDL(t, loadSchema(t), "feedback")

	assert.Contains(t, feedback, "REFERENCES patients(id) ON DELETE CASCADE")
	assert.Contains(t, feedback, "REFERENCES doctors(id) ON DELETE SET NULL")
}

func TestOneLiveBookingPerSlot(t *testing.T) {
	schema := loadSchema(t)

	start := strings.Index(schema, "CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot")
	if start < 0 {
		t.Fatal("slot uniqueness index not found in schema")
	}
	index := schema[start:]
	index = index[:strings.Index(index, ";")]

	assert.Contains(t, index, "appointments(doctor_id, appointment_date, start_time)")
	assert.Contains(t, index, "WHERE status <> 'cancelled'")
}
