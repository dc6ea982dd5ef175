package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrDisallowedType = errors.New("only image files (jpeg, jpg, png, gif, jfif) are allowed")
	ErrFileTooLarge   = errors.New("file exceeds the maximum allowed size")
	ErrInvalidRef     = errors.New("invalid document reference")
)

// DocumentStorage stores supporting documents uploaded with a booking and
// hands back an opaque reference to them.
type DocumentStorage interface {
	// Save validates and stores the upload, returning its reference.
	// filename and contentType are the client-supplied name and MIME type.
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)

	// Delete removes a stored document. Deleting a missing document is not an error.
	Delete(ctx context.Context, ref string) error
}
