package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// FileStoreConfig configures the file-backed document store.
type FileStoreConfig struct {
	Dir string `split_words:"true" default:".pi/harada"`
}

// FileStore keeps one pretty-printed JSON file per key under a data
// directory. Directories are created on demand and writes go through a
// temp file plus rename so readers never see a torn document.
type FileStore struct {
	dir string
}

func NewFileStore(cfg FileStoreConfig) *FileStore {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		dir = ".pi/harada"
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key)+".json")
}

func (s *FileStore) Read(_ context.Context, key string, out any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Debug().Str("key", key).Err(err).Msg("discarding corrupt document")
		return false
	}
	return true
}

func (s *FileStore) Write(_ context.Context, key string, doc any) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create document dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", key, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit document %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context, prefix string) []string {
	prefix = strings.TrimSuffix(prefix, "/")
	entries, err := os.ReadDir(filepath.Join(s.dir, filepath.FromSlash(prefix)))
	if err != nil {
		return nil
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, prefix+"/"+strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys
}
