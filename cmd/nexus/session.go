package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/nexus/internal/storage"
	"github.com/nikbrunner/nexus/internal/store"
)

const logFileName = "nexus.log"

// session is the state prepared by the app's Before hook and shared by
// every command of one run.
type session struct {
	cfg     storage.Config
	logger  *slog.Logger
	handle  *storage.Handle
	closers []io.Closer
}

// setup loads the config file, then environment overrides, then flags.
func (s *session) setup(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = storage.DefaultConfigFilePath()
		if err != nil {
			return err
		}
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.Bool("ephemeral") {
		cfg.Backend = storage.BackendMemory
	}
	if c.Bool("discard-corrupt") {
		cfg.DiscardCorrupt = true
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cfg = *cfg
	s.logger = newLogger(c.App.ErrWriter, cfg.LogLevel)
	return nil
}

// useLogFile redirects logging to the log file so the TUI keeps the terminal.
func (s *session) useLogFile() error {
	path := s.cfg.LogFile
	if path == "" {
		dir, err := storage.DefaultDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, logFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	s.closers = append(s.closers, f)
	s.logger = newLogger(f, s.cfg.LogLevel)
	return nil
}

// openStore opens the configured backend and loads the collection.
func (s *session) openStore() (*store.Store, error) {
	if s.handle == nil {
		handle, err := storage.Open(s.cfg)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		s.handle = handle
		s.closers = append(s.closers, handle)
		s.logger.Debug("opened storage", "backend", handle.Backend)
	}

	return store.Open(s.handle.KV, store.Options{
		DiscardCorrupt: s.cfg.DiscardCorrupt,
		Logger:         s.logger,
	})
}

func (s *session) close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	s.handle = nil
	return firstErr
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

// parseLogLevel maps a level name to a slog level; unknown names mean warn.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
