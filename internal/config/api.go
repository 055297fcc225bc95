package config

import (
	"fmt"

	"github.com/JaimeStill/assessor/pkg/formatting"
	"github.com/JaimeStill/assessor/pkg/middleware"
	"github.com/JaimeStill/assessor/pkg/pagination"
	"github.com/JaimeStill/assessor/pkg/settings"
)

const defaultMaxUpload = 50 << 20

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ASSESSOR_CORS_ENABLED",
	Origins:          "ASSESSOR_CORS_ORIGINS",
	AllowedMethods:   "ASSESSOR_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ASSESSOR_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "ASSESSOR_CORS_EXPOSED_HEADERS",
	AllowCredentials: "ASSESSOR_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ASSESSOR_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ASSESSOR_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ASSESSOR_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig covers the /api module: where it mounts, how large an upload
// it accepts, and its CORS and paging policy.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxUploadSizeBytes returns the parsed upload limit, or 50MB when the value
// is unset or unreadable.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	if size, err := formatting.ParseBytes(c.MaxUploadSize); err == nil && size > 0 {
		return size
	}
	return defaultMaxUpload
}

// Finalize applies defaults, environment overrides, and validation for the
// API section and its nested CORS and pagination sections.
func (c *APIConfig) Finalize() error {
	settings.Default(&c.BasePath, "/api")
	settings.Default(&c.MaxUploadSize, "50MB")
	settings.String("ASSESSOR_API_BASE_PATH", &c.BasePath)
	settings.String("ASSESSOR_API_MAX_UPLOAD_SIZE", &c.MaxUploadSize)

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overlays the non-zero fields of overlay, including nested sections.
func (c *APIConfig) Merge(overlay *APIConfig) {
	settings.Overlay(&c.BasePath, overlay.BasePath)
	settings.Overlay(&c.MaxUploadSize, overlay.MaxUploadSize)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}
