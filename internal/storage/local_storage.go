package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"vehicle-rental-backend/internal/logger"
)

const licenseDir = "rent_driving_license"

// DefaultAllowedTypes are the image formats accepted for driving licenses.
var DefaultAllowedTypes = []string{"jpeg", "jpg", "png", "gif", "jfif"}

// LocalStorageService stores documents on the local filesystem
type LocalStorageService struct {
	uploadsDir   string // Local directory for uploads (e.g., "./uploads")
	licensesDir  string // Subdirectory for driving license images
	maxFileSize  int64
	allowedTypes []string
}

// NewLocalStorageService creates the upload directories if they don't exist.
// maxFileSize <= 0 disables the size limit.
func NewLocalStorageService(uploadsDir string, maxFileSize int64, allowedTypes []string) (*LocalStorageService, error) {
	licensesDir := filepath.Join(uploadsDir, licenseDir)
	if err := os.MkdirAll(licensesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create license directory: %w", err)
	}
	if len(allowedTypes) == 0 {
		allowedTypes = DefaultAllowedTypes
	}

	return &LocalStorageService{
		uploadsDir:   uploadsDir,
		licensesDir:  licensesDir,
		maxFileSize:  maxFileSize,
		allowedTypes: allowedTypes,
	}, nil
}

// ValidateImage accepts a file only when both its extension and its MIME
// subtype are among the allowed image types.
func ValidateImage(filename, contentType string, allowedTypes []string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	subtype, ok := strings.CutPrefix(mediaType, "image/")
	if !ok || ext == "" {
		return ErrDisallowedType
	}
	if !contains(allowedTypes, ext) || !contains(allowedTypes, subtype) {
		return ErrDisallowedType
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Save writes the upload under the license directory. The reference is the
// path relative to the uploads directory.
func (s *LocalStorageService) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ValidateImage(filename, contentType, s.allowedTypes); err != nil {
		return "", err
	}

	name := fmt.Sprintf("licenseImage%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	ref := filepath.ToSlash(filepath.Join(licenseDir, name))
	fullPath := filepath.Join(s.licensesDir, name)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	src := r
	if s.maxFileSize > 0 {
		src = io.LimitReader(r, s.maxFileSize+1)
	}
	written, err := io.Copy(file, src)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxFileSize > 0 && written > s.maxFileSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(fullPath)
		if err == ErrFileTooLarge {
			return "", err
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Debug("Stored document", "ref", ref, "size", written)
	return ref, nil
}

// Delete removes a stored document.
func (s *LocalStorageService) Delete(ctx context.Context, ref string) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// resolve maps a reference to a path, refusing anything outside the license directory.
func (s *LocalStorageService) resolve(ref string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(clean) || filepath.Dir(clean) != licenseDir {
		return "", ErrInvalidRef
	}
	return filepath.Join(s.uploadsDir, clean), nil
}
