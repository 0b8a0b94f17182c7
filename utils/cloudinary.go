package utils

import (
	"fmt"

	"rotharc/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ErrCloudinaryDisabled is returned when no Cloudinary credentials are configured.
var ErrCloudinaryDisabled = fmt.Errorf("cloudinary credentials not set in configuration")

// Cloudinary builds a Cloudinary client from the loaded configuration.
func Cloudinary() (*cloudinary.Cloudinary, error) {
	cloudName := config.AppConfig.CloudinaryCloudName
	apiKey := config.AppConfig.CloudinaryAPIKey
	apiSecret := config.AppConfig.CloudinaryAPISecret

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, ErrCloudinaryDisabled
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
