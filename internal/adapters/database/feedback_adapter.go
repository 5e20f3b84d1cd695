package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	"github.com/clinicbook/clinicbook/internal/infrastructure/clients/postgres"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// FeedbackAdapter implements the FeedbackRepository interface
type FeedbackAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewFeedbackAdapter creates a new feedback adapter
func NewFeedbackAdapter(client *postgres.Client) repositories.FeedbackRepository {
	return &FeedbackAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a feedback entry
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	record := goqu.Record{
		"id":         feedback.ID,
		"patient_id": feedback.PatientID,
		"doctor_id":  feedback.DoctorID,
		"rating":     feedback.Rating,
		"comment":    feedback.Comment,
		"created_at": feedback.CreatedAt,
	}

	query, args, err := a.db.Insert("feedback").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create feedback", err)
	}

	return nil
}
