package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"myscraper/domain"
	"myscraper/service"
)

// SnapshotFile writes snapshots as indented JSON to a fixed path.
type SnapshotFile struct {
	path string
}

// NewSnapshotFile creates a SnapshotFile for path. Panics on empty path.
func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: service.StrPanic(path, "adapters.filestore.snapshot.go: path is required")}
}

// Path returns the file the snapshot is written to.
func (f *SnapshotFile) Path() string {
	return f.path
}

// Publish replaces the file contents with snapshot. The data goes to a
// temporary file in the same directory first and is renamed over the target,
// so readers see either the old or the new snapshot.
func (f *SnapshotFile) Publish(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return service.NewInternalServerError("snapshot marshal error", fmt.Errorf("can't marshal snapshot, err: %w", err))
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return service.NewInternalServerError("snapshot write error", fmt.Errorf("can't create directory %s, err: %w", dir, err))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return service.NewInternalServerError("snapshot write error", fmt.Errorf("can't create temp file in %s, err: %w", dir, err))
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return service.NewInternalServerError("snapshot write error", fmt.Errorf("can't write %s, err: %w", tmpPath, err))
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return service.NewInternalServerError("snapshot write error", fmt.Errorf("can't chmod %s, err: %w", tmpPath, err))
	}
	if err := tmp.Close(); err != nil {
		return service.NewInternalServerError("snapshot write error", fmt.Errorf("can't close %s, err: %w", tmpPath, err))
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return service.NewInternalServerError("snapshot write error", fmt.Errorf("can't rename %s to %s, err: %w", tmpPath, f.path, err))
	}
	return nil
}
