package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/nexus/internal/storage"
	"gotest.tools/v3/assert"
)

// kvBackends returns every KV implementation rooted in a temp directory.
func kvBackends(t *testing.T) map[string]storage.KV {
	t.Helper()

	sqliteKV, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "nexus.db"))
	if err != nil {
		t.Fatalf("failed to create sqlite storage: %v", err)
	}
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]storage.KV{
		"file":   storage.NewFileKV(t.TempDir()),
		"sqlite": sqliteKV,
		"memory": storage.NewMemoryKV(),
	}
}

func TestKV_SetAndGet(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("bookmarks")
			assert.NilError(t, err)
			assert.Assert(t, !ok, "expected absent key before first write")

			assert.NilError(t, kv.Set("bookmarks", `[{"id":"b1"}]`))

			value, ok, err := kv.Get("bookmarks")
			assert.NilError(t, err)
			assert.Assert(t, ok)
			assert.Equal(t, value, `[{"id":"b1"}]`)

			// Overwrite replaces the whole value
			assert.NilError(t, kv.Set("bookmarks", `[]`))
			value, _, err = kv.Get("bookmarks")
			assert.NilError(t, err)
			assert.Equal(t, value, `[]`)
		})
	}
}

func TestKV_RejectsInvalidKeys(t *testing.T) {
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "..", "a/b", `a\b`} {
				assert.ErrorIs(t, kv.Set(key, "x"), storage.ErrInvalidKey)
				_, _, err := kv.Get(key)
				assert.ErrorIs(t, err, storage.ErrInvalidKey)
			}
		})
	}
}

func TestFileKV_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	kv := storage.NewFileKV(dir)

	if err := kv.Set("bookmarks", "[]"); err != nil {
		t.Fatalf("failed to save to nested path: %v", err)
	}

	if _, err := os.Stat(kv.Path("bookmarks")); os.IsNotExist(err) {
		t.Fatal("file was not created in nested directory")
	}
}

func TestFileKV_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	kv := storage.NewFileKV(dir)

	for i := 0; i < 3; i++ {
		assert.NilError(t, kv.Set("bookmarks", strings.Repeat("x", i)))
	}

	entries, err := os.ReadDir(dir)
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 1)
	assert.Equal(t, entries[0].Name(), "bookmarks.json")
}

func TestFileKV_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, storage.NewFileKV(dir).Set("bookmarks", "[1]"))

	value, ok, err := storage.NewFileKV(dir).Get("bookmarks")
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, value, "[1]")
}

func TestMemoryKV_CountsWrites(t *testing.T) {
	kv := storage.NewMemoryKV()
	assert.Equal(t, kv.Writes(), 0)

	assert.NilError(t, kv.Set("a", "1"))
	assert.NilError(t, kv.Set("a", "2"))
	assert.Equal(t, kv.Writes(), 2)

	_ = kv.Set("", "invalid")
	assert.Equal(t, kv.Writes(), 2)
}

func TestOpen_SelectsBackend(t *testing.T) {
	t.Run("auto without database uses json", func(t *testing.T) {
		h, err := storage.Open(storage.Config{DataDir: t.TempDir()})
		assert.NilError(t, err)
		defer h.Close()
		assert.Equal(t, h.Backend, storage.BackendJSON)
	})

	t.Run("auto with existing database uses sqlite", func(t *testing.T) {
		dir := t.TempDir()
		kv, err := storage.NewSQLiteKV(filepath.Join(dir, storage.SQLiteFileName))
		assert.NilError(t, err)
		kv.Close()

		h, err := storage.Open(storage.Config{DataDir: dir})
		assert.NilError(t, err)
		defer h.Close()
		assert.Equal(t, h.Backend, storage.BackendSQLite)
	})

	t.Run("explicit memory", func(t *testing.T) {
		h, err := storage.Open(storage.Config{Backend: storage.BackendMemory})
		assert.NilError(t, err)
		assert.Equal(t, h.Backend, storage.BackendMemory)
		assert.NilError(t, h.Close())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := storage.Open(storage.Config{Backend: "redis", DataDir: t.TempDir()})
		assert.ErrorContains(t, err, "unknown backend")
	})
}
