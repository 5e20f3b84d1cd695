package state

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
	redisclient "github.com/clinicbook/clinicbook/internal/infrastructure/clients/redis"
	apperrors "github.com/clinicbook/clinicbook/pkg/errors"
)

const draftKeyPrefix = "booking:draft:"

// RedisDraftStore implements the BookingDraftStore interface using Redis
// with per-key TTL expiry.
type RedisDraftStore struct {
	client *redisclient.Client
}

// NewRedisDraftStore creates a new Redis draft store
func NewRedisDraftStore(client *redisclient.Client) providers.BookingDraftStore {
	return &RedisDraftStore{
		client: client,
	}
}

// Save stores the draft under the session key, replacing any previous one
func (s *RedisDraftStore) Save(ctx context.Context, sessionID string, draft *entities.BookingDraft, ttl time.Duration) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal booking draft", err)
	}

	if err := s.client.Client().Set(ctx, draftKeyPrefix+sessionID, data, ttl).Err(); err != nil {
		return apperrors.NewInternalError("failed to save booking draft", err)
	}

	return nil
}

// Get retrieves the session's draft
func (s *RedisDraftStore) Get(ctx context.Context, sessionID string) (*entities.BookingDraft, error) {
	data, err := s.client.Client().Get(ctx, draftKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFoundError("no booking in progress")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking draft", err)
	}

	draft := &entities.BookingDraft{}
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal booking draft", err)
	}

	return draft, nil
}

// Delete discards the session's draft
func (s *RedisDraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Client().Del(ctx, draftKeyPrefix+sessionID).Err(); err != nil {
		return apperrors.NewInternalError("failed to delete booking draft", err)
	}
	return nil
}
