package storage

import (
	"errors"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot be used as storage names.
var ErrInvalidKey = errors.New("invalid storage key")

// KV is a durable key-value store holding raw text values.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set replaces the value stored under key.
	Set(key, value string) error
}

// validateKey rejects keys that would escape a storage directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}

// MemoryKV keeps values in process memory. Nothing survives a restart.
type MemoryKV struct {
	values map[string]string
	writes int
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (m *MemoryKV) Writes() int {
	return m.writes
}
