package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"rotharc/models"

	"github.com/go-redis/redis/v8"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// SessionStore keeps one wizard session per user.
type SessionStore interface {
	Load(ctx context.Context, userID string) (*models.WizardSession, error)
	Save(ctx context.Context, s *models.WizardSession) error
	Delete(ctx context.Context, userID string) error
}

const sessionKeyPrefix = "wizard:"

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

// RedisSessionStore stores sessions as JSON with a sliding expiry.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (r *RedisSessionStore) Load(ctx context.Context, userID string) (*models.WizardSession, error) {
	data, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	var s models.WizardSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) Save(ctx context.Context, s *models.WizardSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode wizard session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}
	return nil
}

// MemorySessionStore is a process local store for single instance runs and tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]byte)}
}

func (m *MemorySessionStore) Load(_ context.Context, userID string) (*models.WizardSession, error) {
	m.mu.Lock()
	data, ok := m.sessions[userID]
	m.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	var s models.WizardSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode wizard session: %w", err)
	}
	return &s, nil
}

func (m *MemorySessionStore) Save(_ context.Context, s *models.WizardSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode wizard session: %w", err)
	}
	m.mu.Lock()
	m.sessions[s.UserID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	return nil
}
