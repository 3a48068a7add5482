package storage

import (
	"context"
	"testing"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	payload := []byte("image-bytes")
	info, err := store.Put(ctx, "photo.png", payload, "image/png")
	if err != nil {
		t.Fatalf("failed to put object: %v", err)
	}
	if info.Size != uint64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), info.Size)
	}

	data, _, err := store.Get(ctx, "photo.png")
	if err != nil {
		t.Fatalf("failed to get object: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("unexpected payload: %q", data)
	}

	if _, err := store.GetInfo(ctx, "photo.png"); err != nil {
		t.Fatalf("failed to stat object: %v", err)
	}

	if err := store.Delete(ctx, "photo.png"); err != nil {
		t.Fatalf("failed to delete object: %v", err)
	}
	if _, err := store.GetInfo(ctx, "photo.png"); err == nil {
		t.Error("expected stat to fail after delete")
	}
}

func TestDiskStoreContentTypeFromExtension(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "photo.png", []byte("png-bytes"), ""); err != nil {
		t.Fatalf("failed to put object: %v", err)
	}
	_, info, err := store.Get(ctx, "photo.png")
	if err != nil {
		t.Fatalf("failed to get object: %v", err)
	}
	if info.ContentType != "image/png" {
		t.Errorf("expected image/png, got %q", info.ContentType)
	}
	stat, err := store.GetInfo(ctx, "photo.png")
	if err != nil {
		t.Fatalf("failed to stat object: %v", err)
	}
	if stat.ContentType != "image/png" {
		t.Errorf("expected image/png from stat, got %q", stat.ContentType)
	}

	if _, err := store.Put(ctx, "payload", []byte("raw"), ""); err != nil {
		t.Fatalf("failed to put object: %v", err)
	}
	_, info, err = store.Get(ctx, "payload")
	if err != nil {
		t.Fatalf("failed to get object: %v", err)
	}
	if info.ContentType != "application/octet-stream" {
		t.Errorf("expected the fallback content type, got %q", info.ContentType)
	}
}

func TestDiskStoreDeleteIsIdempotent(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := store.Delete(context.Background(), "never-existed.png"); err != nil {
		t.Errorf("expected deleting a missing object to succeed, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":          "photo.png",
		"../../etc/passwd":   "passwd",
		"dir/inner/file.jpg": "file.jpg",
		"..":                 "unnamed",
		"":                   "unnamed",
	}

	for input, want := range cases {
		if got := SanitizeFilename(input); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", input, got, want)
		}
	}
}
