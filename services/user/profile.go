package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"rotharc/models"
	"rotharc/services/storage"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*models.User, error) {
	if err := s.Repo.UpdateProfile(ctx, userID, strings.TrimSpace(firstName), strings.TrimSpace(lastName)); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, userID)
}

// UploadAvatar stores a new picture and drops the previous one.
func (s *DefaultUserService) UploadAvatar(ctx context.Context, userID string, file io.Reader) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, publicID, err := s.Avatars.UploadAvatar(ctx, userID, file)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetAvatar(ctx, userID, url, publicID); err != nil {
		return nil, err
	}
	if old := u.AvatarPublicID; old != "" && old != publicID {
		if err := s.Avatars.DeleteAvatar(ctx, old); err != nil {
			s.logger.Warn("Failed to delete previous avatar", zap.String("publicID", old), zap.Error(err))
		}
	}
	u.AvatarURL = url
	u.AvatarPublicID = publicID
	return u, nil
}

// DeleteAccount removes the user and everything attached to it.
func (s *DefaultUserService) DeleteAccount(ctx context.Context, userID string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	for _, cleanup := range s.Cleanup {
		if err := cleanup(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}
	if u.AvatarPublicID != "" {
		if err := s.Avatars.DeleteAvatar(ctx, u.AvatarPublicID); err != nil && !errors.Is(err, storage.ErrStorageDisabled) {
			s.logger.Warn("Failed to delete avatar", zap.String("userID", userID), zap.Error(err))
		}
	}
	if err := s.Sessions.RevokeAll(ctx, userID); err != nil {
		s.logger.Warn("Failed to revoke sessions", zap.String("userID", userID), zap.Error(err))
	}
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("User account deleted", zap.String("userID", userID))
	return nil
}
