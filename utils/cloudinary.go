package utils

import (
	"fmt"

	"dreamdecol/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// Cloudinary builds a client from CLOUDINARY_URL. It returns nil when no URL is configured.
func Cloudinary() (*cloudinary.Cloudinary, error) {
	if config.AppConfig.CloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
