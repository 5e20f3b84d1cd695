package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// PatientNoteAdapter implements the PatientNoteRepository interface
type PatientNoteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientNoteAdapter creates a new patient note adapter
func NewPatientNoteAdapter(client *postgres.Client) repositories.PatientNoteRepository {
	return &PatientNoteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByAppointment retrieves the note row for an appointment, if any
func (a *PatientNoteAdapter) GetByAppointment(ctx context.Context, appointmentID string) (*entities.PatientNote, error) {
	query, args, err := a.db.Select(
		"id", "appointment_id", "notes", "prescription", "created_at", "updated_at",
	).From("patient_notes").
		Where(goqu.Ex{"appointment_id": appointmentID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	note := &entities.PatientNote{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&note.ID,
		&note.AppointmentID,
		&note.Notes,
		&note.Prescription,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no notes for appointment %s", appointmentID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient note", err)
	}

	return note, nil
}

// Create inserts the first note row for an appointment
func (a *PatientNoteAdapter) Create(ctx context.Context, note *entities.PatientNote) error {
	record := goqu.Record{
		"id":             note.ID,
		"appointment_id": note.AppointmentID,
		"notes":          note.Notes,
		"prescription":   note.Prescription,
		"created_at":     note.CreatedAt,
		"updated_at":     note.UpdatedAt,
	}

	query, args, err := a.db.Insert("patient_notes").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create patient note", err)
	}

	return nil
}

// Update rewrites the notes and prescription of an existing row
func (a *PatientNoteAdapter) Update(ctx context.Context, note *entities.PatientNote) error {
	note.UpdatedAt = time.Now()

	query, args, err := a.db.Update("patient_notes").
		Set(goqu.Record{
			"notes":        note.Notes,
			"prescription": note.Prescription,
			"updated_at":   note.UpdatedAt,
		}).
		Where(goqu.Ex{"id": note.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient note", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient note with id %s not found", note.ID))
	}

	return nil
}

// ListByPatient retrieves a patient's records ordered by appointment date,
// newest first
func (a *PatientNoteAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.PatientNote, error) {
	query, args, err := a.db.Select(
		goqu.I("n.id"),
		goqu.I("n.appointment_id"),
		goqu.I("n.notes"),
		goqu.I("n.prescription"),
		goqu.I("n.created_at"),
		goqu.I("n.updated_at"),
		goqu.I("a.appointment_date"),
		goqu.I("du.name").As("doctor_name"),
	).From(goqu.T("patient_notes").As("n")).
		Join(goqu.T("appointments").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("n.appointment_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Where(goqu.Ex{"a.patient_id": patientID}).
		Order(goqu.I("a.appointment_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patient notes", err)
	}
	defer rows.Close()

	notes := []*entities.PatientNote{}
	for rows.Next() {
		note := &entities.PatientNote{}
		err := rows.Scan(
			&note.ID,
			&note.AppointmentID,
			&note.Notes,
			&note.Prescription,
			&note.CreatedAt,
			&note.UpdatedAt,
			&note.AppointmentDate,
			&note.DoctorName,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient note", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating patient notes", err)
	}

	return notes, nil
}
