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

// PatientAdapter implements the PatientRepository interface
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func patientRecord(patient *entities.Patient) goqu.Record {
	return goqu.Record{
		"id":         patient.ID,
		"user_id":    patient.UserID,
		"age":        patient.Age,
		"phone":      patient.Phone,
		"created_at": patient.CreatedAt,
		"updated_at": patient.UpdatedAt,
	}
}

// Create creates a patient profile for an existing patient user
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	query, args, err := a.db.Insert("patients").Rows(patientRecord(patient)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create patient", err)
	}

	return nil
}

// CreateWithUser creates the user account and the patient profile in one
// transaction, so a failed profile insert never strands a user row
func (a *PatientAdapter) CreateWithUser(ctx context.Context, user *entities.User, patient *entities.Patient) error {
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
			build: a.db.Insert("patients").Rows(patientRecord(patient)).ToSQL,
			msg:   "failed to create patient",
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
		return apperrors.NewInternalError("failed to commit registration", err)
	}

	return nil
}

func (a *PatientAdapter) selectWithUser() *goqu.SelectDataset {
	return a.db.Select(
		goqu.I("p.id"),
		goqu.I("p.user_id"),
		goqu.I("p.age"),
		goqu.I("p.phone"),
		goqu.I("p.created_at"),
		goqu.I("p.updated_at"),
		goqu.I("u.name"),
		goqu.I("u.email"),
	).From(goqu.T("patients").As("p")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("p.user_id"))))
}

func scanPatient(row interface{ Scan(...interface{}) error }) (*entities.Patient, error) {
	patient := &entities.Patient{}
	err := row.Scan(
		&patient.ID,
		&patient.UserID,
		&patient.Age,
		&patient.Phone,
		&patient.CreatedAt,
		&patient.UpdatedAt,
		&patient.Name,
		&patient.Email,
	)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

// GetByID retrieves a patient with the linked user's name and email
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	return a.getOne(ctx, goqu.Ex{"p.id": id}, fmt.Sprintf("patient with id %s not found", id))
}

// GetByUserID resolves the patient profile of a patient user
func (a *PatientAdapter) GetByUserID(ctx context.Context, userID string) (*entities.Patient, error) {
	return a.getOne(ctx, goqu.Ex{"p.user_id": userID}, fmt.Sprintf("patient profile for user %s not found", userID))
}

func (a *PatientAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.Patient, error) {
	query, args, err := a.selectWithUser().Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	patient, err := scanPatient(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	return patient, nil
}

// List retrieves all patients ordered by name
func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	query, args, err := a.selectWithUser().Order(goqu.I("u.name").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	defer rows.Close()

	patients := []*entities.Patient{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating patients", err)
	}

	return patients, nil
}

// Update updates the patient profile and the linked user's name
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	patient.UpdatedAt = time.Now()

	query, args, err := a.db.Update("patients").
		Set(goqu.Record{
			"age":        patient.Age,
			"phone":      patient.Phone,
			"updated_at": patient.UpdatedAt,
		}).
		Where(goqu.Ex{"id": patient.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", patient.ID))
	}

	if patient.Name != "" {
		query, args, err = a.db.Update("users").
			Set(goqu.Record{
				"name":       patient.Name,
				"updated_at": patient.UpdatedAt,
			}).
			Where(goqu.Ex{"id": patient.UserID}).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build user update query", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to update patient user", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit patient update", err)
	}

	return nil
}
