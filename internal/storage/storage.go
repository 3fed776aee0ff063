package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is the file storage backend used by the referenced-attachment
// deployment. The inline deployment never touches it. Reads go through
// the public URL, not this interface: local files are served statically
// and S3-compatible buckets serve their own.
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3-compatible backends
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // For R2 or custom S3
}

// NewStorage creates a storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
