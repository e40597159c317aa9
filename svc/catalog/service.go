// Package catalog manages the menu: foods with their images, and the
// categories they belong to.
package catalog

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/foodorder/pkg/file"
	"github.com/dmitrymomot/foodorder/pkg/logger"
)

const (
	// DefaultPageSize is the number of foods per page.
	DefaultPageSize = 10
	// DefaultMaxImageSize limits uploaded food images.
	DefaultMaxImageSize int64 = 5 << 20

	imagePrefix = "foods"
)

// Service implements catalog operations.
type Service struct {
	storage      Storage
	files        file.Storage
	logger       *slog.Logger
	now          func() time.Time
	pageSize     int
	maxImageSize int64
}

// Option configures Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to name uploads.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPageSize sets the number of foods per page.
func WithPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithMaxImageSize sets the upload limit for food images in bytes.
func WithMaxImageSize(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxImageSize = n
		}
	}
}

// NewService creates the catalog service. files stores food images.
func NewService(storage Storage, files file.Storage, opts ...Option) *Service {
	s := &Service{
		storage:      storage,
		files:        files,
		logger:       logger.Noop(),
		now:          time.Now,
		pageSize:     DefaultPageSize,
		maxImageSize: DefaultMaxImageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageSize returns the number of foods per page.
func (s *Service) PageSize() int {
	return s.pageSize
}
