package photostore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/env"
)

// Config holds the S3-compatible photo store configuration
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // Optional for S3-compatible services
	PublicBaseURL   string // CDN or bucket website base for serving photos
	Enabled         bool
}

// LoadConfig loads photo store configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		PublicBaseURL:   env.GetEnv("S3_PUBLIC_BASE_URL", ""),
		Enabled:         env.GetEnv("PHOTO_STORE_ENABLED", "false") == "true",
	}

	// Validate required fields if the photo store is enabled
	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when the photo store is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when the photo store is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when the photo store is enabled")
		}
	}

	return config, nil
}

// IsEnabled returns true if the photo store is enabled
func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// GetObjectKey generates a standardized object key for a listing photo.
// Format: properties/<uuid>/<filename>
func (c *Config) GetObjectKey(propertyUUID, fileName string) string {
	return fmt.Sprintf("properties/%s/%s", propertyUUID, fileName)
}

// GetThumbObjectKey generates the key for a photo's thumbnail
func (c *Config) GetThumbObjectKey(propertyUUID, fileName string) string {
	return fmt.Sprintf("properties/%s/thumb_%s", propertyUUID, fileName)
}

// PublicURL builds the browser-facing URL for an object key
func (c *Config) PublicURL(objectKey string) string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/") + "/" + objectKey
	}
	if c.EndpointURL != "" {
		return strings.TrimRight(c.EndpointURL, "/") + "/" + c.BucketName + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.BucketName, c.Region, objectKey)
}

// GetAppEnv returns the current application environment
func GetAppEnv() string {
	return env.GetEnv("APP_ENV", "dev")
}

// GetBucketName returns the bucket name as configured (no automatic prefixing)
func (c *Config) GetBucketName() string {
	return c.BucketName
}
