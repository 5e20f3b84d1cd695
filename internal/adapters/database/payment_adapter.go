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

// PaymentAdapter implements the PaymentRepository interface
type PaymentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPaymentAdapter creates a new payment adapter
func NewPaymentAdapter(client *postgres.Client) repositories.PaymentRepository {
	return &PaymentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *PaymentAdapter) selectWithAppointment() *goqu.SelectDataset {
	return a.db.Select(
		goqu.I("pay.id"),
		goqu.I("pay.appointment_id"),
		goqu.I("pay.amount"),
		goqu.I("pay.status"),
		goqu.I("pay.created_at"),
		goqu.I("pay.updated_at"),
		goqu.I("a.appointment_date"),
		goqu.I("du.name").As("doctor_name"),
	).From(goqu.T("payments").As("pay")).
		Join(goqu.T("appointments").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("pay.appointment_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id"))))
}

func scanPayment(row interface{ Scan(...interface{}) error }) (*entities.Payment, error) {
	payment := &entities.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.AppointmentID,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&payment.AppointmentDate,
		&payment.DoctorName,
	)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetForPatient retrieves a payment only if its appointment belongs to the
// patient
func (a *PaymentAdapter) GetForPatient(ctx context.Context, id, patientID string) (*entities.Payment, error) {
	query, args, err := a.selectWithAppointment().
		Where(goqu.Ex{"pay.id": id, "a.patient_id": patientID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	payment, err := scanPayment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("payment not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get payment", err)
	}

	return payment, nil
}

// UpdateStatus persists a payment status change
func (a *PaymentAdapter) UpdateStatus(ctx context.Context, id string, status entities.PaymentStatus) error {
	query, args, err := a.db.Update("payments").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update payment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment with id %s not found", id))
	}

	return nil
}

// ListByPatient retrieves a patient's payments ordered by appointment date,
// newest first
func (a *PaymentAdapter) ListByPatient(ctx context.Context, patientID string) ([]*entities.Payment, error) {
	query, args, err := a.selectWithAppointment().
		Where(goqu.Ex{"a.patient_id": patientID}).
		Order(goqu.I("a.appointment_date").Desc(), goqu.I("pay.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list payments", err)
	}
	defer rows.Close()

	payments := []*entities.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan payment", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating payments", err)
	}

	return payments, nil
}

// CountByStatus returns the number of payments in the given status
func (a *PaymentAdapter) CountByStatus(ctx context.Context, status entities.PaymentStatus) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT(goqu.Star())).
		From("payments").
		Where(goqu.Ex{"status": status}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count payments", err)
	}

	return count, nil
}

// TotalPaid returns the summed amount of paid payments
func (a *PaymentAdapter) TotalPaid(ctx context.Context) (float64, error) {
	query, args, err := a.db.Select(goqu.COALESCE(goqu.SUM(goqu.C("amount")), 0)).
		From("payments").
		Where(goqu.Ex{"status": entities.PaymentStatusPaid}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build sum query", err)
	}

	var total float64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to sum payments", err)
	}

	return total, nil
}

// RevenueByDoctor returns paid amounts grouped by doctor name
func (a *PaymentAdapter) RevenueByDoctor(ctx context.Context) (map[string]float64, error) {
	query, args, err := a.db.Select(
		goqu.I("du.name"),
		goqu.SUM(goqu.I("pay.amount")),
	).From(goqu.T("payments").As("pay")).
		Join(goqu.T("appointments").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("pay.appointment_id")))).
		Join(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		Join(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		Where(goqu.Ex{"pay.status": entities.PaymentStatusPaid}).
		GroupBy(goqu.I("du.name")).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build revenue query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query revenue", err)
	}
	defer rows.Close()

	revenue := map[string]float64{}
	for rows.Next() {
		var name string
		var amount float64
		if err := rows.Scan(&name, &amount); err != nil {
			return nil, apperrors.NewInternalError("failed to scan revenue row", err)
		}
		revenue[name] = amount
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating revenue", err)
	}

	return revenue, nil
}
