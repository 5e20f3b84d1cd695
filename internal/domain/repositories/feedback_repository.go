package repositories

import (
	"context"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
// Feedback is create-only.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.Feedback) error
}
