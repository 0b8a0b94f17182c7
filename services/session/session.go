package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rotharc/database/repository"
	userRepo "rotharc/database/repository/user"
	"rotharc/models"
	"rotharc/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session")
	ErrNotOpen      = errors.New("session manager is not open")
)

// CurrentUser is the authenticated caller attached to a request.
type CurrentUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

func currentUserFrom(u *models.User) *CurrentUser {
	return &CurrentUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsAdmin:   u.IsAdmin,
	}
}

const (
	tokenKeyPrefix = "authToken:"
	userKeyPrefix  = "authUser:"
)

// Manager issues and resolves session tokens. A token is valid while its JWT
// verifies and its hash is still present in the auth cache, so logout takes
// effect immediately.
type Manager struct {
	users  userRepo.UserRepository
	cache  *redis.Client
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	open   bool
}

func NewManager(users userRepo.UserRepository, cache *redis.Client, secret string, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		users:  users,
		cache:  cache,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Open checks the auth cache is reachable. Call once at startup.
func (m *Manager) Open(ctx context.Context) error {
	if err := m.cache.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("session manager: auth cache unreachable: %w", err)
	}
	m.open = true
	m.logger.Info("Session manager ready", zap.Duration("ttl", m.ttl))
	return nil
}

// Close releases the auth cache connection.
func (m *Manager) Close() error {
	m.open = false
	return m.cache.Close()
}

// Issue signs a token for u and records it in the auth cache.
func (m *Manager) Issue(ctx context.Context, u *models.User) (string, error) {
	if !m.open {
		return "", ErrNotOpen
	}
	token, err := utils.GenerateToken(m.secret, u.ID, u.Email, m.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	hash := utils.HashToken(token)

	pipe := m.cache.TxPipeline()
	pipe.Set(ctx, tokenKeyPrefix+hash, u.ID, m.ttl)
	pipe.SAdd(ctx, userKeyPrefix+u.ID, hash)
	pipe.Expire(ctx, userKeyPrefix+u.ID, m.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Resolve returns the user behind token.
func (m *Manager) Resolve(ctx context.Context, token string) (*CurrentUser, error) {
	if !m.open {
		return nil, ErrNotOpen
	}
	userID, err := utils.ExtractIDFromToken(m.secret, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	cached, err := m.cache.Get(ctx, tokenKeyPrefix+utils.HashToken(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if cached != userID {
		return nil, ErrInvalidToken
	}

	u, err := m.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return currentUserFrom(u), nil
}

// Revoke ends the session of a single token.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	hash := utils.HashToken(token)
	userID, err := m.cache.Get(ctx, tokenKeyPrefix+hash).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	pipe := m.cache.TxPipeline()
	pipe.Del(ctx, tokenKeyPrefix+hash)
	pipe.SRem(ctx, userKeyPrefix+userID, hash)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAll ends every session of a user.
func (m *Manager) RevokeAll(ctx context.Context, userID string) error {
	hashes, err := m.cache.SMembers(ctx, userKeyPrefix+userID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	keys := make([]string, 0, len(hashes)+1)
	for _, h := range hashes {
		keys = append(keys, tokenKeyPrefix+h)
	}
	keys = append(keys, userKeyPrefix+userID)
	if err := m.cache.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	m.logger.Info("Revoked all sessions", zap.String("userID", userID), zap.Int("count", len(hashes)))
	return nil
}
