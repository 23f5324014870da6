package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking for v1; fine for a local single-user CLI.

// JSONStore keeps every key of the store in one JSON document on disk.
type JSONStore struct {
	path string
}

// OpenJSON returns a store backed by the file at path. The file is created
// lazily on the first Set; a missing file reads as an empty store.
func OpenJSON(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path (the watcher needs it).
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) read() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	kv := map[string]json.RawMessage{}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return kv, nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	kv, err := s.read()
	if err != nil {
		return nil, false, err
	}
	raw, ok := kv[key]
	if !ok {
		return nil, false, nil
	}
	return raw, true, nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	kv, err := s.read()
	if err != nil {
		return err
	}
	kv[key] = json.RawMessage(value)
	b, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
