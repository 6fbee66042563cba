package scenedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"guise/internal/config"
	"guise/internal/logging"
)

// ErrSceneLocked indicates another guise process holds the scene database.
var ErrSceneLocked = errors.New("scene database is locked by another process")

// Scene is a SQLite-backed scene.Host implementation.
type Scene struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open initializes or connects to the scene database, acquires the process
// lock, and applies the schema.
func Open(cfg *config.Config, logger *slog.Logger) (*Scene, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockFilePath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire scene lock: %w", err)
	}
	if !locked {
		return nil, ErrSceneLocked
	}

	dbPath := cfg.SceneDatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	scene := &Scene{
		db:     db,
		path:   dbPath,
		lock:   lock,
		logger: logging.WithComponent(logger, "scenedb"),
	}
	if err := scene.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return scene, nil
}

// Close releases the database connection and the process lock.
func (s *Scene) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		firstErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the scene database location.
func (s *Scene) Path() string { return s.path }

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
