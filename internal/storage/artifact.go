package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DownloadToFile fetches an object into a local file, creating parent
// directories as needed. The write goes through a temp file so a partial
// download never replaces an existing artifact, and the byte count is
// checked against the object's reported size.
func DownloadToFile(ctx context.Context, store ObjectStore, key, localPath string) error {
	expected, err := store.Stat(ctx, key)
	if err != nil {
		return fmt.Errorf("stat %q: %w", key, err)
	}

	reader, err := store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("fetch %q: %w", key, err)
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(localPath), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	written, err := io.Copy(tmp, reader)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("download %q: %w", key, err)
	}
	if expected.Size > 0 && written != expected.Size {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("download %q: wrote %d bytes, object reports %d", key, written, expected.Size)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, localPath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %q: %w", localPath, err)
	}
	return nil
}

// UploadFile writes a local file to the object store under key.
func UploadFile(ctx context.Context, store ObjectStore, localPath, key, contentType string) (ObjectInfo, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("open %q: %w", localPath, err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat %q: %w", localPath, err)
	}
	info, err := store.Put(ctx, key, file, stat.Size(), PutOptions{ContentType: contentType})
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("upload %q: %w", key, err)
	}
	return info, nil
}
