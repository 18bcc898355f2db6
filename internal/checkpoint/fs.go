package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS is a filesystem-backed Store. Each entry is one JSON file named
// {kind}-{id}.json inside a per-repository directory.
type FS struct {
	dir string
}

// Ensure FS implements the interface.
var _ Store = (*FS)(nil)

// DefaultDir returns the conventional checkpoint directory for a
// repository: <tempdir>/ghexport/<owner>/<repo>.
func DefaultDir(owner, repo string) string {
	return filepath.Join(os.TempDir(), "ghexport", owner, repo)
}

// NewFS creates a filesystem store rooted at dir. The directory is
// created lazily on the first Put.
func NewFS(dir string) *FS {
	return &FS{dir: dir}
}

// Dir returns the store's root directory.
func (s *FS) Dir() string { return s.dir }

// Get reads the entry file for (kind, id). A missing file is a miss.
func (s *FS) Get(kind Kind, id string) (json.RawMessage, bool, error) {
	data, err := os.ReadFile(s.entryPath(kind, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading checkpoint: %w", err)
	}
	return data, true, nil
}

// Put writes the document to the entry file, creating the directory if
// absent and overwriting any prior content.
func (s *FS) Put(kind Kind, id string, doc json.RawMessage) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating checkpoint directory: %w", err)
	}
	if err := os.WriteFile(s.entryPath(kind, id), doc, 0o644); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

// Clear removes every *.json entry in the store directory. Paths are
// fully qualified against the store directory, never the working
// directory.
func (s *FS) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading checkpoint directory: %w", err)
	}

	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("removing checkpoint: %w", err)
		}
	}
	return nil
}

// Stats walks the store directory and reports entry count and size.
func (s *FS) Stats() (Stats, error) {
	stats := Stats{Location: s.dir}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading checkpoint directory: %w", err)
	}

	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}
	return stats, nil
}

// Close is a no-op for the filesystem backend.
func (s *FS) Close() error { return nil }

func (s *FS) entryPath(kind Kind, id string) string {
	// Ids must not introduce path separators into the entry name.
	id = strings.ReplaceAll(id, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", kind, id))
}
