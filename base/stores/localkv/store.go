// Package localkv is a single-file key/value store standing in for one
// browser profile's local storage: string keys, JSON-encoded string values,
// synchronous writes. One process is assumed to own the file; there is no
// cross-process coordination.
package localkv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// Open loads the store file, creating an empty store when the file does not
// exist yet. A corrupt file is an error, not a silent wipe.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "failed on read store file")
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, errors.Wrap(err, "failed on decode store file")
		}
	}
	return s, nil
}

// Get returns the value under key, or the empty string when unset.
func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

// Set writes the value and persists the whole store synchronously.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

// Del removes the key and persists.
func (s *Store) Del(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flush()
}

func (s *Store) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, "failed on encode store")
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "failed on create store dir")
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrap(err, "failed on write store file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "failed on replace store file")
	}
	return nil
}
