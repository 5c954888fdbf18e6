package storage

import (
	"io"
	"os"
	"path/filepath"
)

// SQLiteFileName is the database file used by the sqlite backend.
const SQLiteFileName = "nexus.db"

// Handle is an opened KV that may hold resources until closed.
type Handle struct {
	KV
	Backend string
	closer  io.Closer
}

// Close releases the backend, if it holds anything.
func (h *Handle) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

// Open opens the backend selected by cfg.
// With BackendAuto, SQLite is used when its database file already exists;
// otherwise the JSON directory store is used.
func Open(cfg Config) (*Handle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dir := cfg.DataDir
	if dir == "" && cfg.Backend != BackendMemory {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	sqlitePath := filepath.Join(dir, SQLiteFileName)

	backend := cfg.Backend
	if backend == BackendAuto {
		backend = BackendJSON
		if _, err := os.Stat(sqlitePath); err == nil {
			backend = BackendSQLite
		}
	}

	switch backend {
	case BackendMemory:
		return &Handle{KV: NewMemoryKV(), Backend: backend}, nil
	case BackendSQLite:
		kv, err := NewSQLiteKV(sqlitePath)
		if err != nil {
			return nil, err
		}
		return &Handle{KV: kv, Backend: backend, closer: kv}, nil
	default:
		return &Handle{KV: NewFileKV(dir), Backend: BackendJSON}, nil
	}
}
