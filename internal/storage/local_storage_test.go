package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		ok          bool
	}{
		{"license.png", "image/png", true},
		{"license.JPG", "image/jpeg", true},
		{"scan.jfif", "image/jpeg", true},
		{"license.gif", "image/gif; charset=binary", true},
		{"license.pdf", "application/pdf", false},
		{"license.png", "application/octet-stream", false},
		{"license", "image/png", false},
		{"license.exe", "image/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename+" "+tt.contentType, func(t *testing.T) {
			err := ValidateImage(tt.filename, tt.contentType, DefaultAllowedTypes)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDisallowedType)
			}
		})
	}
}

func TestLocalStorageService(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	svc, err := NewLocalStorageService(dir, 16, nil)
	require.NoError(t, err)

	t.Run("Save and delete", func(t *testing.T) {
		ref, err := svc.Save(ctx, "license.png", "image/png", strings.NewReader("png-bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "rent_driving_license/licenseImage"))
		assert.True(t, strings.HasSuffix(ref, ".png"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(ref)))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))

		require.NoError(t, svc.Delete(ctx, ref))
		_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(ref)))
		assert.True(t, os.IsNotExist(err))

		// deleting twice is fine
		assert.NoError(t, svc.Delete(ctx, ref))
	})

	t.Run("Too large", func(t *testing.T) {
		_, err := svc.Save(ctx, "license.png", "image/png", bytes.NewReader(make([]byte, 17)))
		assert.ErrorIs(t, err, ErrFileTooLarge)

		entries, err := os.ReadDir(filepath.Join(dir, "rent_driving_license"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Disallowed type", func(t *testing.T) {
		_, err := svc.Save(ctx, "license.pdf", "application/pdf", strings.NewReader("%PDF"))
		assert.ErrorIs(t, err, ErrDisallowedType)
	})

	t.Run("Reference outside license directory", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, "../../etc/passwd"), ErrInvalidRef)
		assert.ErrorIs(t, svc.Delete(ctx, "/etc/passwd"), ErrInvalidRef)
		assert.ErrorIs(t, svc.Delete(ctx, "rent_driving_license/../secret"), ErrInvalidRef)
	})
}
