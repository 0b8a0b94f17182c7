package user

import (
	"context"
	"io"

	userRepo "rotharc/database/repository/user"
	"rotharc/models"
	"rotharc/services/storage"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error

	// Profile
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*models.User, error)
	UploadAvatar(ctx context.Context, userID string, file io.Reader) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

// TokenIssuer creates and revokes session tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, u *models.User) (string, error)
	Revoke(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userID string) error
}

// CleanupFunc removes data owned by a user before the account goes away.
type CleanupFunc func(ctx context.Context, userID string) error

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Sessions TokenIssuer
	Avatars  storage.AvatarStore
	// Cleanup runs in order on account deletion; the first error aborts it.
	Cleanup []CleanupFunc
	// HashCost is the bcrypt cost for new passwords.
	HashCost int

	logger *zap.Logger
}

func NewUserService(repo userRepo.UserRepository, sessions TokenIssuer, avatars storage.AvatarStore, logger *zap.Logger, cleanup ...CleanupFunc) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{
		Repo:     repo,
		Sessions: sessions,
		Avatars:  avatars,
		Cleanup:  cleanup,
		HashCost: bcrypt.DefaultCost,
		logger:   logger,
	}
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
}
