package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonwraymond/ogimage/lazy"
)

const (
	// DefaultDir is the cache root used when none is configured.
	DefaultDir = ".cache/og-images"

	// EnvDir names the environment variable that overrides DefaultDir.
	EnvDir = "OGX_CACHE_DIR"

	fileExt = ".png"
)

// DiskConfig configures a DiskStore.
type DiskConfig struct {
	// Dir is the root directory. The store owns it exclusively; Clear
	// removes it entirely.
	// Default: $OGX_CACHE_DIR, then ".cache/og-images"
	Dir string

	// DirPerm is the permission used when creating Dir.
	// Default: 0o755
	DirPerm fs.FileMode

	// FilePerm is the permission of stored files.
	// Default: 0o644
	FilePerm fs.FileMode
}

// DiskStore persists entries as "<key>.png" files under a root directory.
//
// The root is created on first use. Concurrent first callers share a single
// creation, and Clear resets it so the next write recreates the root.
// Writes go to a temporary file that is renamed into place, so readers never
// observe a partially written entry.
type DiskStore struct {
	config DiskConfig
	root   *lazy.Value[string]
}

// NewDiskStore creates a disk-backed store.
func NewDiskStore(config DiskConfig) *DiskStore {
	// Apply defaults
	if config.Dir == "" {
		config.Dir = os.Getenv(EnvDir)
	}
	if config.Dir == "" {
		config.Dir = DefaultDir
	}
	if config.DirPerm == 0 {
		config.DirPerm = 0o755
	}
	if config.FilePerm == 0 {
		config.FilePerm = 0o644
	}

	s := &DiskStore{config: config}
	s.root = lazy.New(func(context.Context) (string, error) {
		if err := os.MkdirAll(s.config.Dir, s.config.DirPerm); err != nil {
			return "", fmt.Errorf("cache: create root %q: %w", s.config.Dir, err)
		}
		return s.config.Dir, nil
	})
	return s
}

// Dir returns the root directory.
func (s *DiskStore) Dir() string {
	return s.config.Dir
}

// Ready ensures the root directory exists.
func (s *DiskStore) Ready(ctx context.Context) error {
	_, err := s.root.Get(ctx)
	return err
}

// Get reads the entry for key. Any failure, including an invalid key,
// is reported as a miss.
func (s *DiskStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if ValidateKey(key) != nil {
		return nil, false
	}
	root, err := s.root.Get(ctx)
	if err != nil {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(root, key+fileExt))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put writes data under key, replacing any previous entry.
func (s *DiskStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	root, err := s.root.Get(ctx)
	if err != nil {
		return err
	}
	err = s.write(root, key, data)
	if errors.Is(err, fs.ErrNotExist) {
		// The root was removed underneath us; recreate it once.
		s.root.Reset()
		if root, err = s.root.Get(ctx); err != nil {
			return err
		}
		err = s.write(root, key, data)
	}
	return err
}

func (s *DiskStore) write(root, key string, data []byte) error {
	tmp, err := os.CreateTemp(root, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, s.config.FilePerm)
	}
	if err == nil {
		err = os.Rename(tmpName, filepath.Join(root, key+fileExt))
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: write %s: %w", key, err)
	}
	return nil
}

// Stats counts the stored entries and their total size.
// Returns zero Stats if the root cannot be read.
func (s *DiskStore) Stats(ctx context.Context) Stats {
	root, err := s.root.Get(ctx)
	if err != nil {
		return Stats{}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return Stats{}
	}

	var stats Stats
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return Stats{}
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}
	return stats
}

// Clear removes the root directory and everything in it.
// Clearing a missing root is not an error.
func (s *DiskStore) Clear(_ context.Context) error {
	defer s.root.Reset()
	if err := os.RemoveAll(s.config.Dir); err != nil {
		return fmt.Errorf("cache: clear %q: %w", s.config.Dir, err)
	}
	return nil
}

// Ensure DiskStore implements Store
var _ Store = (*DiskStore)(nil)
