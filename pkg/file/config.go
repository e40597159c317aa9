package file

import (
	"context"
	"fmt"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the upload backend.
type Config struct {
	Driver       string `env:"FILE_STORAGE_DRIVER" envDefault:"local"`
	LocalDir     string `env:"FILE_LOCAL_DIR" envDefault:"./uploads"`
	LocalBaseURL string `env:"FILE_LOCAL_BASE_URL" envDefault:"/uploads/"`
	MaxSize      int64  `env:"FILE_MAX_SIZE" envDefault:"5242880"`
	S3           S3Config
}

// NewStorage builds the Storage named by cfg.Driver.
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		s, err := NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		s, err := NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
