package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// weekdayOrder sorts rows by calendar weekday rather than alphabetically.
// Unknown day names sort last.
func weekdayOrder() exp.LiteralExpression {
	return goqu.L(
		"CASE day WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3" +
			" WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6" +
			" WHEN 'Sunday' THEN 7 ELSE 8 END",
	)
}

// AvailabilityAdapter implements the AvailabilityRepository interface
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) repositories.AvailabilityRepository {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists an availability window
func (a *AvailabilityAdapter) Create(ctx context.Context, window *entities.DoctorAvailability) error {
	record := goqu.Record{
		"id":         window.ID,
		"doctor_id":  window.DoctorID,
		"day":        window.Day,
		"start_time": window.StartTime,
		"end_time":   window.EndTime,
		"location":   window.Location,
	}

	query, args, err := a.db.Insert("doctor_availabilities").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create availability", err)
	}

	return nil
}

// Delete removes a window by id regardless of owner
func (a *AvailabilityAdapter) Delete(ctx context.Context, id string) error {
	return a.delete(ctx, goqu.Ex{"id": id}, fmt.Sprintf("availability with id %s not found", id))
}

// DeleteForDoctor removes a window only if it belongs to the doctor
func (a *AvailabilityAdapter) DeleteForDoctor(ctx context.Context, id, doctorID string) error {
	return a.delete(ctx, goqu.Ex{"id": id, "doctor_id": doctorID}, fmt.Sprintf("availability with id %s not found", id))
}

func (a *AvailabilityAdapter) delete(ctx context.Context, where goqu.Ex, notFoundMsg string) error {
	query, args, err := a.db.Delete("doctor_availabilities").Where(where).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete availability", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMsg)
	}

	return nil
}

// ListByDoctor retrieves a doctor's windows ordered by weekday then start
// time, optionally filtered by location
func (a *AvailabilityAdapter) ListByDoctor(ctx context.Context, doctorID, location string) ([]*entities.DoctorAvailability, error) {
	ds := a.db.Select(
		"id", "doctor_id", "day", "start_time", "end_time", "location",
	).From("doctor_availabilities").
		Where(goqu.Ex{"doctor_id": doctorID})

	if location != "" {
		ds = ds.Where(goqu.L("LOWER(location)").Eq(strings.ToLower(location)))
	}

	query, args, err := ds.Order(weekdayOrder().Asc(), goqu.C("start_time").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list availabilities", err)
	}
	defer rows.Close()

	windows := []*entities.DoctorAvailability{}
	for rows.Next() {
		window := &entities.DoctorAvailability{}
		err := rows.Scan(
			&window.ID,
			&window.DoctorID,
			&window.Day,
			&window.StartTime,
			&window.EndTime,
			&window.Location,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan availability", err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating availabilities", err)
	}

	return windows, nil
}

// Locations lists the distinct locations across all windows
func (a *AvailabilityAdapter) Locations(ctx context.Context) ([]string, error) {
	query, args, err := a.db.Select("location").
		From("doctor_availabilities").
		Distinct().
		Order(goqu.C("location").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build locations query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list locations", err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, apperrors.NewInternalError("failed to scan location", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating locations", err)
	}

	return locations, nil
}
