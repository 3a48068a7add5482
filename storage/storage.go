// Package storage holds uploaded product image payloads. Callers receive
// an opaque reference that the catalog records next to each image row.
package storage

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"ravvio_server/structs"
	"strings"
	"time"
)

const defaultContentType = "application/octet-stream"

// contentTypeFor guesses a content type from the object name's extension.
// The disk backend has no metadata sidecar, so reads rely on this.
func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}

// ObjectStore defines the interface for blob storage operations.
type ObjectStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) (*ObjectInfo, error)
	Get(ctx context.Context, name string) ([]byte, *ObjectInfo, error)
	Delete(ctx context.Context, name string) error
	GetInfo(ctx context.Context, name string) (*ObjectInfo, error)
}

// ObjectInfo represents metadata about a stored object.
type ObjectInfo struct {
	Name        string
	Size        uint64
	ContentType string
	ModTime     time.Time
}

// New builds the configured blob store backend.
func New(cfg *structs.StorageConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "", "disk":
		return NewDiskStore(cfg.DiskRoot)
	case "jetstream":
		return NewJetStreamStore(cfg.NatsURL, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// SanitizeFilename removes path separators and dangerous characters from
// an uploaded filename.
func SanitizeFilename(filename string) string {
	clean := filepath.Base(filepath.Clean(filename))
	clean = strings.ReplaceAll(clean, "/", "_")
	clean = strings.ReplaceAll(clean, "\\", "_")
	if clean == "." || clean == ".." || clean == "" {
		return "unnamed"
	}
	return clean
}
