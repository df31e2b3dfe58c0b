package store

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ecommerce-dashboard/internal/models"
)

const cacheVersion = "v2"

var errCacheDisabled = errors.New("snapshot cache disabled")

// snapshot is the on-disk form of a parsed dataset. It holds raw records
// only; derived views are never written.
type snapshot struct {
	SourceModTime time.Time
	SourceSize    int64
	Skipped       int
	Records       []models.Transaction
}

type snapshotCache struct {
	dir string
}

func newSnapshotCache(dir string) snapshotCache {
	return snapshotCache{dir: dir}
}

func (c snapshotCache) filename(csvPath string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(csvPath)
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.gob", name, cacheVersion))
}

func (c snapshotCache) load(csvPath string, info os.FileInfo) (*snapshot, error) {
	if c.dir == "" {
		return nil, errCacheDisabled
	}

	file, err := os.Open(c.filename(csvPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snap snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if !snap.SourceModTime.Equal(info.ModTime()) || snap.SourceSize != info.Size() {
		return nil, errors.New("snapshot is stale")
	}
	return &snap, nil
}

func (c snapshotCache) save(csvPath string, info os.FileInfo, snap snapshot) error {
	if c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	snap.SourceModTime = info.ModTime()
	snap.SourceSize = info.Size()

	tmp, err := os.CreateTemp(c.dir, "snapshot-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(snap); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.filename(csvPath))
}
