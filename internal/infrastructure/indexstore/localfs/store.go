package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

// Store persists PageIndex artifacts as JSON files addressed by document id.
// Artifacts are immutable: a rebuild writes a fresh file over the old one.
type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if basePath == "" {
		basePath = "./data/indexes"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save serializes the full index, raw page text included — retrieval needs
// the text, not just summaries. Publication is write-temp-then-rename so a
// concurrent Load never observes a torn artifact.
func (s *Store) Save(_ context.Context, documentID string, index *domain.PageIndex) (string, error) {
	if index == nil {
		return "", fmt.Errorf("nil index for document %s", documentID)
	}

	data, err := json.Marshal(index)
	if err != nil {
		return "", fmt.Errorf("marshal index: %w", err)
	}

	path := filepath.Join(s.basePath, fmt.Sprintf("index_%s.json", documentID))
	tmp, err := os.CreateTemp(s.basePath, "index_*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write index artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close index artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("publish index artifact: %w", err)
	}
	return path, nil
}

// Load returns nil for a missing, unreadable or corrupt artifact. Callers
// treat nil as "no index available", not as an error to propagate.
func (s *Store) Load(_ context.Context, path string) *domain.PageIndex {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var index domain.PageIndex
	if err := json.Unmarshal(data, &index); err != nil {
		slog.Warn("discarding corrupt index artifact", "path", path, "error", err)
		return nil
	}
	return &index
}

// Remove deletes an artifact; missing files are not an error, the caller is
// discarding the index either way.
func (s *Store) Remove(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove index artifact: %w", err)
	}
	return nil
}
