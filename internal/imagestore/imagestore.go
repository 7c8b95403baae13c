// Package imagestore talks to the remote image store. The workflow only sees
// the Store interface; the production implementation is Cloudinary.
package imagestore

import (
	"context"
	"fmt"

	"swiftverify/internal/models"
)

// Store is the remote image store: push bytes, get back a retrieval URL and
// a deletion identifier; delete by that identifier.
type Store interface {
	Store(ctx context.Context, data []byte, label string) (models.ImageRef, error)
	Delete(ctx context.Context, publicID string) error
}

// APIError is a non-2xx or error-payload response from the remote store.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("imagestore: remote store error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("imagestore: remote store error (status %d)", e.StatusCode)
}
