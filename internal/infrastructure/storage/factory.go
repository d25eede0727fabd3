package storage

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/domain/port"
)

// Backend names accepted by NewStore.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Config selects and configures an artifact store backend.
type Config struct {
	Backend  string // "fs" (default) or "s3"
	Dir      string // root directory for the fs backend
	Bucket   string
	Region   string
	Endpoint string
	Prefix   string
}

// NewStore creates the artifact store named by cfg.Backend.
func NewStore(ctx context.Context, cfg Config) (port.ArtifactStore, error) {
	switch cfg.Backend {
	case "", BackendFS:
		return NewFileStore(cfg.Dir)
	case BackendS3:
		if cfg.Bucket == "" {
			return nil, fmt.Errorf("artifact bucket is required for the s3 backend")
		}
		return NewS3Store(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
			Prefix:   cfg.Prefix,
		})
	default:
		return nil, fmt.Errorf("unsupported artifact backend: %s", cfg.Backend)
	}
}
