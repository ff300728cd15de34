package archive

import "context"

// Store reads and writes whole archive objects by path.
type Store interface {
	// Put creates or replaces the object at path. Stores that support it
	// attach tags to the object.
	Put(ctx context.Context, path string, data []byte, tags map[string]string) error
	// Get returns the object at path, or an error wrapping ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)
}
