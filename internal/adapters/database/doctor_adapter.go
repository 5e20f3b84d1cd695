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

// DoctorAdapter implements the DoctorRepository interface
type DoctorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *postgres.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func doctorRecord(doctor *entities.Doctor) goqu.Record {
	return goqu.Record{
		"id":               doctor.ID,
		"user_id":          doctor.UserID,
		"specialty":        doctor.Specialty,
		"consultation_fee": doctor.ConsultationFee,
		"bio":              doctor.Bio,
		"created_at":       doctor.CreatedAt,
		"updated_at":       doctor.UpdatedAt,
	}
}

// Create creates a doctor profile for an existing doctor user
func (a *DoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	query, args, err := a.db.Insert("doctors").Rows(doctorRecord(doctor)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create doctor", err)
	}

	return nil
}

// CreateWithUser creates the user account and the doctor profile in one
// transaction, so a failed profile insert never strands a user row
func (a *DoctorAdapter) CreateWithUser(ctx context.Context, user *entities.User, doctor *entities.Doctor) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	steps := []struct {
		build func() (string, []interface{}, error)
		msg   string
	}{
		{
			build: a.db.Insert("users").Rows(userRecord(user)).ToSQL,
			msg:   "failed to create user",
		},
		{
			build: a.db.Insert("doctors").Rows(doctorRecord(doctor)).ToSQL,
			msg:   "failed to create doctor",
		},
	}

	for _, step := range steps {
		query, args, err := step.build()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
				return apperrors.NewConflictError("an account with this email already exists")
			}
			return apperrors.NewInternalError(step.msg, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit doctor creation", err)
	}

	return nil
}

func (a *DoctorAdapter) selectWithUser() *goqu.SelectDataset {
	return a.db.Select(
		goqu.I("d.id"),
		goqu.I("d.user_id"),
		goqu.I("d.specialty"),
		goqu.I("d.consultation_fee"),
		goqu.I("d.bio"),
		goqu.I("d.created_at"),
		goqu.I("d.updated_at"),
		goqu.I("u.name"),
		goqu.I("u.email"),
	).From(goqu.T("doctors").As("d")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("d.user_id"))))
}

func scanDoctor(row interface{ Scan(...interface{}) error }) (*entities.Doctor, error) {
	doctor := &entities.Doctor{}
	err := row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Specialty,
		&doctor.ConsultationFee,
		&doctor.Bio,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&doctor.Name,
		&doctor.Email,
	)
	if err != nil {
		return nil, err
	}
	return doctor, nil
}

// GetByID retrieves a doctor with the linked user's name and email
func (a *DoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	return a.getOne(ctx, goqu.Ex{"d.id": id}, fmt.Sprintf("doctor with id %s not found", id))
}

// GetByUserID resolves the doctor profile of a doctor user
func (a *DoctorAdapter) GetByUserID(ctx context.Context, userID string) (*entities.Doctor, error) {
	return a.getOne(ctx, goqu.Ex{"d.user_id": userID}, fmt.Sprintf("doctor profile for user %s not found", userID))
}

func (a *DoctorAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.Doctor, error) {
	query, args, err := a.selectWithUser().Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	doctor, err := scanDoctor(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}

	return doctor, nil
}

// List retrieves all doctors ordered by name, with availability windows
// loaded
func (a *DoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	query, args, err := a.selectWithUser().Order(goqu.I("u.name").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list doctors", err)
	}
	defer rows.Close()

	doctors := []*entities.Doctor{}
	byID := map[string]*entities.Doctor{}
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
		byID[doctor.ID] = doctor
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctors", err)
	}

	if len(doctors) == 0 {
		return doctors, nil
	}

	if err := a.attachAvailabilities(ctx, byID); err != nil {
		return nil, err
	}

	return doctors, nil
}

// attachAvailabilities loads all windows in one query and groups them onto
// their doctors, ordered by weekday then start time.
func (a *DoctorAdapter) attachAvailabilities(ctx context.Context, byID map[string]*entities.Doctor) error {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := a.db.Select(
		"id", "doctor_id", "day", "start_time", "end_time", "location",
	).From("doctor_availabilities").
		Where(goqu.C("doctor_id").In(ids)).
		Order(weekdayOrder().Asc(), goqu.C("start_time").Asc()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build availability query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to load availabilities", err)
	}
	defer rows.Close()

	for rows.Next() {
		window := entities.DoctorAvailability{}
		err := rows.Scan(
			&window.ID,
			&window.DoctorID,
			&window.Day,
			&window.StartTime,
			&window.EndTime,
			&window.Location,
		)
		if err != nil {
			return apperrors.NewInternalError("failed to scan availability", err)
		}
		if doctor, ok := byID[window.DoctorID]; ok {
			doctor.Availabilities = append(doctor.Availabilities, window)
		}
	}

	if err := rows.Err(); err != nil {
		return apperrors.NewInternalError("error iterating availabilities", err)
	}

	return nil
}

// Update updates the doctor profile and the linked user's display attributes
func (a *DoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	doctor.UpdatedAt = time.Now()

	query, args, err := a.db.Update("doctors").
		Set(goqu.Record{
			"specialty":        doctor.Specialty,
			"consultation_fee": doctor.ConsultationFee,
			"bio":              doctor.Bio,
			"updated_at":       doctor.UpdatedAt,
		}).
		Where(goqu.Ex{"id": doctor.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update doctor", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %s not found", doctor.ID))
	}

	if doctor.Name != "" {
		query, args, err = a.db.Update("users").
			Set(goqu.Record{
				"name":       doctor.Name,
				"updated_at": doctor.UpdatedAt,
			}).
			Where(goqu.Ex{"id": doctor.UserID}).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build user update query", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to update doctor user", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit doctor update", err)
	}

	return nil
}

// Delete removes the doctor's availability windows, the doctor profile and
// the linked user account as one unit of work
func (a *DoctorAdapter) Delete(ctx context.Context, id string) error {
	doctor, err := a.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	steps := []struct {
		build func() (string, []interface{}, error)
		msg   string
	}{
		{
			build: a.db.Delete("doctor_availabilities").Where(goqu.Ex{"doctor_id": id}).ToSQL,
			msg:   "failed to delete doctor availabilities",
		},
		{
			build: a.db.Delete("doctors").Where(goqu.Ex{"id": id}).ToSQL,
			msg:   "failed to delete doctor",
		},
		{
			build: a.db.Delete("users").Where(goqu.Ex{"id": doctor.UserID}).ToSQL,
			msg:   "failed to delete doctor user",
		},
	}

	for _, step := range steps {
		query, args, err := step.build()
		if err != nil {
			return apperrors.NewInternalError("failed to build delete query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
				return apperrors.NewConflictError("doctor has appointments on record and cannot be removed")
			}
			return apperrors.NewInternalError(step.msg, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit doctor delete", err)
	}

	return nil
}

// Specialties lists the distinct specialties currently on record
func (a *DoctorAdapter) Specialties(ctx context.Context) ([]string, error) {
	query, args, err := a.db.Select("specialty").
		From("doctors").
		Distinct().
		Order(goqu.C("specialty").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build specialties query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list specialties", err)
	}
	defer rows.Close()

	var specialties []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, apperrors.NewInternalError("failed to scan specialty", err)
		}
		specialties = append(specialties, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating specialties", err)
	}

	return specialties, nil
}
