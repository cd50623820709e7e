package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// Key prefixes group stored files by owner entity.
const (
	PrefixApartments = "apartments"
	PrefixProfiles   = "profiles"
)

var (
	ErrNotFound        = errors.New("image not found")
	ErrInvalidKey      = errors.New("invalid image key")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds maximum size")
)

// ImageStore persists uploaded images under keys of the form "<prefix>/<uuid><ext>".
type ImageStore interface {
	// Save stores the content of r and returns the generated key.
	// filename is only used for its extension.
	Save(ctx context.Context, prefix, filename string, r io.Reader) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is a no-op for keys that do not exist.
	Delete(ctx context.Context, key string) error

	// List returns the keys under prefix last modified before the cutoff.
	List(ctx context.Context, prefix string, before time.Time) ([]string, error)

	// URL returns the public download address for key.
	URL(key string) string
}
