package storage

import (
	"fmt"

	"github.com/veritaslab/veritas/internal/config"
)

// NewArtifactStore creates an ArtifactStore from the model
// configuration: a local directory by default, or an S3-compatible
// bucket when configured.
func NewArtifactStore(cfg *config.ModelConfig) (ArtifactStore, error) {
	switch cfg.Source {
	case "", "local":
		return NewLocalStore(cfg.Dir)
	case "s3":
		return NewS3Store(&S3Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
		})
	default:
		return nil, fmt.Errorf("unknown model artifact source %q", cfg.Source)
	}
}
