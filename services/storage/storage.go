package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"rotharc/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// ErrStorageDisabled is returned when no media backend is configured.
var ErrStorageDisabled = errors.New("media storage is not configured")

const avatarFolder = "rotharc/avatars"

// AvatarStore keeps profile pictures.
type AvatarStore interface {
	// UploadAvatar stores the image and returns its public URL and identifier.
	UploadAvatar(ctx context.Context, userID string, file io.Reader) (url, publicID string, err error)
	DeleteAvatar(ctx context.Context, publicID string) error
}

// CloudinaryAvatarStore implements AvatarStore on Cloudinary.
type CloudinaryAvatarStore struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

func NewCloudinaryAvatarStore(cld *cloudinary.Cloudinary, logger *zap.Logger) *CloudinaryAvatarStore {
	return &CloudinaryAvatarStore{cld: cld, logger: logger}
}

// NewAvatarStore returns the Cloudinary store when credentials are configured
// and a disabled store otherwise.
func NewAvatarStore(logger *zap.Logger) AvatarStore {
	cld, err := utils.Cloudinary()
	if err != nil {
		logger.Warn("Avatar uploads disabled", zap.Error(err))
		return DisabledAvatarStore{}
	}
	return NewCloudinaryAvatarStore(cld, logger)
}

func (s *CloudinaryAvatarStore) UploadAvatar(ctx context.Context, userID string, file io.Reader) (string, string, error) {
	params := uploader.UploadParams{
		Folder:   avatarFolder,
		PublicID: userID,
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	if result.Error.Message != "" {
		return "", "", fmt.Errorf("failed to upload avatar: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return "", "", errors.New("failed to upload avatar: no public ID returned")
	}
	s.logger.Debug("Avatar uploaded", zap.String("userID", userID), zap.String("publicID", result.PublicID))
	return result.SecureURL, result.PublicID, nil
}

func (s *CloudinaryAvatarStore) DeleteAvatar(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete avatar %s: %w", publicID, err)
	}
	return nil
}

// DisabledAvatarStore rejects every call with ErrStorageDisabled.
type DisabledAvatarStore struct{}

func (DisabledAvatarStore) UploadAvatar(context.Context, string, io.Reader) (string, string, error) {
	return "", "", ErrStorageDisabled
}

func (DisabledAvatarStore) DeleteAvatar(context.Context, string) error {
	return ErrStorageDisabled
}
