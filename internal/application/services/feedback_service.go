package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

// FeedbackService handles feedback submissions. Feedback is create-only.
type FeedbackService struct {
	repo       repositories.FeedbackRepository
	doctorRepo repositories.DoctorRepository
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(repo repositories.FeedbackRepository, doctorRepo repositories.DoctorRepository) *FeedbackService {
	return &FeedbackService{
		repo:       repo,
		doctorRepo: doctorRepo,
	}
}

// SubmitInput carries a feedback submission.
type SubmitInput struct {
	DoctorID string `json:"doctor_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Submit stores a patient's feedback. The rating must be 1 to 5; the
// doctor reference is optional but must exist when given.
func (s *FeedbackService) Submit(ctx context.Context, patientID string, input SubmitInput) (*entities.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	feedback := &entities.Feedback{
		ID:        uuid.New().String(),
		PatientID: patientID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: time.Now(),
	}

	if doctorID := strings.TrimSpace(input.DoctorID); doctorID != "" {
		if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
			return nil, err
		}
		feedback.DoctorID = &doctorID
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}
