package core

import (
	"context"
	"io"
)

// StorageService stores profile images in an S3-compatible bucket.
type StorageService interface {
	// UploadProfileImage writes the image under a generated object key and
	// returns the public URL.
	UploadProfileImage(ctx context.Context, userID uint, body io.Reader, contentType string) (string, error)

	// DeleteObject removes the object for the given URL. Deleting an
	// unknown object is not an error.
	DeleteObject(ctx context.Context, url string) error
}
