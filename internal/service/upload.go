package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/casdoor/oss"
	"github.com/gosimple/slug"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/nanoid"
	"github.com/ncobase/taskmanager/validation/validator"
)

// UploadService stores profile images.
type UploadService struct {
	storage    oss.StorageInterface
	publicPath string
	maxSize    int64
	logger     *logger.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(storage oss.StorageInterface, publicPath string, maxSize int64, logger *logger.Logger) *UploadService {
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &UploadService{
		storage:    storage,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		maxSize:    maxSize,
		logger:     logger,
	}
}

// MaxSize returns the upload size limit in bytes, 0 for none.
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// UploadImage stores an image under a generated name and returns its public URL path.
func (s *UploadService) UploadImage(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("upload storage is not configured")
	}
	if !validator.IsImageFile(filename) {
		return "", BadInput("Only image files are allowed")
	}
	if s.maxSize > 0 && size > s.maxSize {
		return "", BadInput("File exceeds the %d byte limit", s.maxSize)
	}

	name := StoredName(filename, nanoid.Lower(10))
	if _, err := s.storage.Put(name, r); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "Image uploaded", "file", name)
	return path.Join(s.publicPath, name), nil
}

// StoredName builds a URL-safe file name from the original name and a unique id.
func StoredName(filename, id string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		return id + ext
	}
	return id + "-" + base + ext
}
