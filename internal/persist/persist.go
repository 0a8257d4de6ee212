// Package persist is the load/save side of the calendar: a string key/value
// Storage and JSON helpers that never let malformed stored content reach the
// caller.
package persist

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"sync"
)

const (
	KeyEvents = "calendarEvents"
	KeyTheme  = "calendarTheme"
)

// Storage is a string key/value store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// PersistenceReadError describes stored content that could not be read or
// decoded. Load recovers from it by returning the fallback.
type PersistenceReadError struct {
	Key string
	Err error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("read %q: %v", e.Key, e.Err)
}

func (e *PersistenceReadError) Unwrap() error { return e.Err }

// Read decodes the JSON value stored under key into a T. A missing key
// yields found == false and no error.
func Read[T any](s Storage, key string) (v T, found bool, err error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return v, false, &PersistenceReadError{Key: key, Err: err}
	}
	if !ok || raw == "" {
		return v, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, false, &PersistenceReadError{Key: key, Err: err}
	}
	return v, true, nil
}

// Load returns the value stored under key, or fallback when it is missing,
// unreadable or malformed. Failures are logged, never returned.
func Load[T any](s Storage, key string, fallback T, logger *slog.Logger) T {
	v, found, err := Read[T](s, key)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("stored value unreadable, using fallback", "key", key, "error", err)
		return fallback
	}
	if !found {
		return fallback
	}
	return v
}

// Save stores v under key as JSON.
func Save(s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := s.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Memory is an in-process Storage.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the stored values.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
