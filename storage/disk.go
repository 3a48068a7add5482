package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"ravvio_server/lib"
)

// DiskStore implements ObjectStore on the local filesystem. It is the
// default backend and the one the tests run against.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) path(name string) string {
	return filepath.Join(s.root, SanitizeFilename(name))
}

func (s *DiskStore) Put(ctx context.Context, name string, data []byte, contentType string) (*ObjectInfo, error) {
	if contentType == "" {
		contentType = contentTypeFor(name)
	}

	path := s.path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: failed to write object %q: %v", lib.ErrStorage, name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat object %q: %v", lib.ErrStorage, name, err)
	}

	return &ObjectInfo{
		Name:        SanitizeFilename(name),
		Size:        uint64(info.Size()),
		ContentType: contentType,
		ModTime:     info.ModTime(),
	}, nil
}

func (s *DiskStore) Get(ctx context.Context, name string) ([]byte, *ObjectInfo, error) {
	path := s.path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read object %q: %v", lib.ErrStorage, name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to stat object %q: %v", lib.ErrStorage, name, err)
	}

	return data, &ObjectInfo{
		Name:        SanitizeFilename(name),
		Size:        uint64(info.Size()),
		ContentType: contentTypeFor(name),
		ModTime:     info.ModTime(),
	}, nil
}

func (s *DiskStore) Delete(ctx context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to delete object %q: %v", lib.ErrStorage, name, err)
	}
	return nil
}

func (s *DiskStore) GetInfo(ctx context.Context, name string) (*ObjectInfo, error) {
	info, err := os.Stat(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat object %q: %v", lib.ErrStorage, name, err)
	}
	return &ObjectInfo{
		Name:        SanitizeFilename(name),
		Size:        uint64(info.Size()),
		ContentType: contentTypeFor(name),
		ModTime:     info.ModTime(),
	}, nil
}
