package outbound

import (
	"context"
	"io"
)

// ObjectStore is the opaque blob storage collaborator. The service hands it
// attachment bytes and persists only the key it stored them under.
type ObjectStore interface {
	// Put stores size bytes from r under key
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Remove deletes the object stored under key
	Remove(ctx context.Context, key string) error
}
