package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"ravvio_server/lib"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const natsSetupTimeout = 10 * time.Second

// JetStreamStore implements ObjectStore using the NATS JetStream object
// store. Selected with STORAGE_BACKEND=jetstream.
type JetStreamStore struct {
	conn   *nats.Conn
	store  jetstream.ObjectStore
	bucket string
}

func NewJetStreamStore(natsURL, bucket string) (*JetStreamStore, error) {
	conn, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), natsSetupTimeout)
	defer cancel()

	store, err := js.ObjectStore(ctx, bucket)
	if err != nil {
		store, err = js.CreateObjectStore(ctx, jetstream.ObjectStoreConfig{
			Bucket:      bucket,
			Description: "Product image storage bucket",
		})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create object store bucket: %w", err)
		}
	}

	return &JetStreamStore{conn: conn, store: store, bucket: bucket}, nil
}

func (s *JetStreamStore) Put(ctx context.Context, name string, data []byte, contentType string) (*ObjectInfo, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	meta := jetstream.ObjectMeta{
		Name: name,
		Headers: nats.Header{
			"Content-Type": []string{contentType},
		},
	}

	info, err := s.store.Put(ctx, meta, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to store object %q: %v", lib.ErrStorage, name, err)
	}

	return &ObjectInfo{
		Name:        info.Name,
		Size:        info.Size,
		ContentType: contentType,
		ModTime:     info.ModTime,
	}, nil
}

func (s *JetStreamStore) Get(ctx context.Context, name string) ([]byte, *ObjectInfo, error) {
	result, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get object %q: %v", lib.ErrStorage, name, err)
	}
	defer result.Close()

	data, err := io.ReadAll(result)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read object %q: %v", lib.ErrStorage, name, err)
	}

	info, err := result.Info()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get object info for %q: %v", lib.ErrStorage, name, err)
	}

	return data, &ObjectInfo{
		Name:        info.Name,
		Size:        info.Size,
		ContentType: headerContentType(info.Headers),
		ModTime:     info.ModTime,
	}, nil
}

func (s *JetStreamStore) Delete(ctx context.Context, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("%w: failed to delete object %q: %v", lib.ErrStorage, name, err)
	}
	return nil
}

func (s *JetStreamStore) GetInfo(ctx context.Context, name string) (*ObjectInfo, error) {
	info, err := s.store.GetInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get object info for %q: %v", lib.ErrStorage, name, err)
	}
	return &ObjectInfo{
		Name:        info.Name,
		Size:        info.Size,
		ContentType: headerContentType(info.Headers),
		ModTime:     info.ModTime,
	}, nil
}

func (s *JetStreamStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	return nil
}

func headerContentType(headers nats.Header) string {
	if headers != nil {
		if ct := headers.Get("Content-Type"); ct != "" {
			return ct
		}
	}
	return defaultContentType
}
