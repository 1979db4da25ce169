package service

import (
	"context"
	"io"
)

// MediaStorage defines the interface for storing uploaded media such as user
// avatars and publisher logos. Implementations back onto a blob bucket.
type MediaStorage interface {
	// Save writes the content under key and returns the public URL of the object.
	Save(ctx context.Context, key string, contentType string, content io.Reader) (string, error)

	// Delete removes the object stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying bucket connection.
	Close() error
}
