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

const sessionKeyPrefix = "session:"

// RedisSessionStore implements the SessionStore interface using Redis.
// Sessions expire through the key TTL; no sweep is needed.
type RedisSessionStore struct {
	client *redisclient.Client
}

// NewRedisSessionStore creates a new Redis session store
func NewRedisSessionStore(client *redisclient.Client) providers.SessionStore {
	return &RedisSessionStore{
		client: client,
	}
}

// Create stores a session with the given TTL
func (s *RedisSessionStore) Create(ctx context.Context, session *entities.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal session", err)
	}

	if err := s.client.Client().Set(ctx, sessionKeyPrefix+session.Token, data, ttl).Err(); err != nil {
		return apperrors.NewInternalError("failed to save session", err)
	}

	return nil
}

// Get retrieves a session by token
func (s *RedisSessionStore) Get(ctx context.Context, token string) (*entities.Session, error) {
	data, err := s.client.Client().Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewUnauthorizedError("session expired or not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get session", err)
	}

	session := &entities.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal session", err)
	}

	return session, nil
}

// Delete removes a session
func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Client().Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return apperrors.NewInternalError("failed to delete session", err)
	}
	return nil
}
