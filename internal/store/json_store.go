package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONProfileRepo keeps profile documents in a single JSON file, one
// entry per key. It is the lightweight alternative to the SQLite store.
type JSONProfileRepo struct {
	filePath string
	mu       sync.RWMutex
	docs     map[string]json.RawMessage
}

// NewJSONProfileRepo opens (or lazily creates) the file at filePath.
func NewJSONProfileRepo(filePath string) (*JSONProfileRepo, error) {
	r := &JSONProfileRepo{
		filePath: filePath,
		docs:     make(map[string]json.RawMessage),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JSONProfileRepo) Load(_ context.Context, key string) (json.RawMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[key]
	if !ok {
		return nil, nil
	}
	return append(json.RawMessage(nil), doc...), nil
}

func (r *JSONProfileRepo) Save(_ context.Context, key string, data json.RawMessage) error {
	if !json.Valid(data) {
		return fmt.Errorf("save profile %q: invalid JSON document", key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[key] = append(json.RawMessage(nil), data...)
	return r.persistLocked()
}

func (r *JSONProfileRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[key]; !ok {
		return nil
	}
	delete(r.docs, key)
	return r.persistLocked()
}

func (r *JSONProfileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", r.filePath, err)
	}
	docs := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("parse %s: %w", r.filePath, err)
	}
	r.docs = docs
	return nil
}

func (r *JSONProfileRepo) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(r.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r.docs, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := r.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, r.filePath)
}
