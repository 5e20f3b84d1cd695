package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateWithPayment inserts an appointment together with its pending payment
// in one transaction. The appointment insert is conditional on the slot
// still being free; a partial unique index on (doctor_id, appointment_date,
// start_time) for non-cancelled rows backs it against races.
func (a *AppointmentAdapter) CreateWithPayment(ctx context.Context, appointment *entities.Appointment, payment *entities.Payment) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	slotTaken := a.db.Select(goqu.L("1")).
		From("appointments").
		Where(goqu.Ex{
			"doctor_id":        appointment.DoctorID,
			"appointment_date": entities.DateOnly(appointment.AppointmentDate),
			"start_time":       appointment.StartTime,
		}).
		Where(goqu.C("status").Neq(entities.AppointmentStatusCancelled))

	insert := a.db.Insert("appointments").
		Cols(
			"id", "patient_id", "doctor_id", "appointment_date",
			"start_time", "end_time", "location", "status",
			"created_at", "updated_at",
		).
		FromQuery(a.db.Select(
			goqu.V(appointment.ID),
			goqu.V(appointment.PatientID),
			goqu.V(appointment.DoctorID),
			goqu.V(entities.DateOnly(appointment.AppointmentDate)),
			goqu.V(appointment.StartTime),
			goqu.V(appointment.EndTime),
			goqu.V(appointment.Location),
			goqu.V(appointment.Status),
			goqu.V(appointment.CreatedAt),
			goqu.V(appointment.UpdatedAt),
		).Where(goqu.L("NOT EXISTS ?", slotTaken)))

	query, args, err := insert.ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.NewConflictError("the selected slot is no longer available")
		}
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewConflictError("the selected slot is no longer available")
	}

	query, args, err = a.db.Insert("payments").Rows(goqu.Record{
		"id":             payment.ID,
		"appointment_id": payment.AppointmentID,
		"amount":         payment.Amount,
		"status":         payment.Status,
		"created_at":     payment.CreatedAt,
		"updated_at":     payment.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build payment insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create payment", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit booking", err)
	}

	return nil
}

// SlotTaken reports whether a non-cancelled appointment exists for the
// doctor on the date with the exact start time
func (a *AppointmentAdapter) SlotTaken(ctx context.Context, doctorID string, date time.Time, startTime string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT(goqu.Star())).
		From("appointments").
		Where(goqu.Ex{
			"doctor_id":        doctorID,
			"appointment_date": entities.DateOnly(date),
			"start_time":       startTime,
		}).
		Where(goqu.C("status").Neq(entities.AppointmentStatusCancelled)).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build slot query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check slot", err)
	}

	return count > 0, nil
}

func (a *AppointmentAdapter) selectWithNames() *goqu.SelectDataset {
	return a.db.Select(
		goqu.I("a.id"),
		goqu.I("a.patient_id"),
		goqu.I("a.doctor_id"),
		goqu.I("a.appointment_date"),
		goqu.I("a.start_time"),
		goqu.I("a.end_time"),
		goqu.I("a.location"),
		goqu.I("a.status"),
		goqu.I("a.created_at"),
		goqu.I("a.updated_at"),
		goqu.I("du.name").As("doctor_name"),
		goqu.I("pu.name").As("patient_name"),
	).From(goqu.T("appointments").As("a")).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Join(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.patient_id")))).
		Join(goqu.T("users").As("pu"), goqu.On(goqu.I("pu.id").Eq(goqu.I("p.user_id"))))
}

func scanAppointment(row interface{ Scan(...interface{}) error }) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.AppointmentDate,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Location,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.DoctorName,
		&appointment.PatientName,
	)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return a.getOne(ctx, goqu.Ex{"a.id": id})
}

// GetForDoctor retrieves an appointment only if the doctor owns it
func (a *AppointmentAdapter) GetForDoctor(ctx context.Context, id, doctorID string) (*entities.Appointment, error) {
	return a.getOne(ctx, goqu.Ex{"a.id": id, "a.doctor_id": doctorID})
}

// GetForPatient retrieves an appointment only if the patient owns it
func (a *AppointmentAdapter) GetForPatient(ctx context.Context, id, patientID string) (*entities.Appointment, error) {
	return a.getOne(ctx, goqu.Ex{"a.id": id, "a.patient_id": patientID})
}

func (a *AppointmentAdapter) getOne(ctx context.Context, where goqu.Ex) (*entities.Appointment, error) {
	query, args, err := a.selectWithNames().Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("appointment not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// Update persists status, schedule and location changes
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	appointment.UpdatedAt = time.Now()

	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"appointment_date": entities.DateOnly(appointment.AppointmentDate),
			"start_time":       appointment.StartTime,
			"end_time":         appointment.EndTime,
			"location":         appointment.Location,
			"status":           appointment.Status,
			"updated_at":       appointment.UpdatedAt,
		}).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.NewConflictError("the selected slot is no longer available")
		}
		return apperrors.NewInternalError("failed to update appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointment.ID))
	}

	return nil
}

// ListByPatient retrieves a patient's appointments, newest first
func (a *AppointmentAdapter) ListByPatient(ctx context.Context, patientID string, filter repositories.AppointmentListFilter) ([]*entities.Appointment, error) {
	return a.list(ctx, goqu.Ex{"a.patient_id": patientID}, filter)
}

// ListByDoctor retrieves a doctor's appointments, newest first
func (a *AppointmentAdapter) ListByDoctor(ctx context.Context, doctorID string, filter repositories.AppointmentListFilter) ([]*entities.Appointment, error) {
	return a.list(ctx, goqu.Ex{"a.doctor_id": doctorID}, filter)
}

func (a *AppointmentAdapter) list(ctx context.Context, where goqu.Ex, filter repositories.AppointmentListFilter) ([]*entities.Appointment, error) {
	ds := a.selectWithNames().Where(where)

	today := entities.DateOnly(time.Now())
	switch filter {
	case repositories.FilterUpcoming:
		ds = ds.Where(
			goqu.I("a.appointment_date").Gte(today),
			goqu.I("a.status").Neq(entities.AppointmentStatusCancelled),
		)
	case repositories.FilterToday:
		ds = ds.Where(
			goqu.I("a.appointment_date").Eq(today),
			goqu.I("a.status").Neq(entities.AppointmentStatusCancelled),
		)
	case repositories.FilterPast:
		ds = ds.Where(goqu.Or(
			goqu.I("a.appointment_date").Lt(today),
			goqu.I("a.status").Eq(entities.AppointmentStatusCompleted),
		))
	case repositories.FilterCancelled:
		ds = ds.Where(goqu.I("a.status").Eq(entities.AppointmentStatusCancelled))
	}

	query, args, err := ds.Order(
		goqu.I("a.appointment_date").Desc(),
		goqu.I("a.start_time").Desc(),
	).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	appointments := []*entities.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating appointments", err)
	}

	return appointments, nil
}

// CountByStatus returns appointment counts grouped by status
func (a *AppointmentAdapter) CountByStatus(ctx context.Context) (map[entities.AppointmentStatus]int, error) {
	query, args, err := a.db.Select(goqu.C("status"), goqu.COUNT(goqu.Star())).
		From("appointments").
		GroupBy("status").
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build count query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count appointments", err)
	}
	defer rows.Close()

	counts := map[entities.AppointmentStatus]int{}
	for rows.Next() {
		var status entities.AppointmentStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperrors.NewInternalError("failed to scan status count", err)
		}
		counts[status] = n
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating status counts", err)
	}

	return counts, nil
}

// Count returns the total number of appointments
func (a *AppointmentAdapter) Count(ctx context.Context) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT(goqu.Star())).From("appointments").ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count appointments", err)
	}

	return count, nil
}
