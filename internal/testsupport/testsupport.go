// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"guise/internal/config"
	"guise/internal/logging"
	"guise/internal/scene"
	"guise/internal/scenedb"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Player.ID = "test-player"
	cfg.Player.Name = "Test Player"
	cfg.Player.Role = string(scene.RoleMaster)

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithPlayerRole overrides the acting player's role on the test config.
func WithPlayerRole(role scene.Role) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Player.Role = string(role)
	}
}

// MustOpenScene opens a scene database for the given config and registers
// cleanup. Tests fail immediately if the scene cannot be opened.
func MustOpenScene(t testing.TB, cfg *config.Config) *scenedb.Scene {
	t.Helper()

	sc, err := scenedb.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open scene database: %v", err)
	}
	t.Cleanup(func() {
		if err := sc.Close(); err != nil {
			t.Errorf("close scene database: %v", err)
		}
	})
	return sc
}

// SeedItem inserts an item and returns the stored copy.
func SeedItem(t testing.TB, sc *scenedb.Scene, item scene.Item) scene.Item {
	t.Helper()

	stored, err := sc.CreateItem(context.Background(), item)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return stored
}

// SeedPlayer inserts a roster entry.
func SeedPlayer(t testing.TB, sc *scenedb.Scene, player scene.Player) {
	t.Helper()

	if err := sc.UpsertPlayer(context.Background(), player); err != nil {
		t.Fatalf("seed player: %v", err)
	}
}

// ImageItem returns a token-style test item with sensible image defaults.
func ImageItem(name, url string) scene.Item {
	return scene.Item{
		Name:        name,
		Layer:       scene.LayerCharacter,
		ImageURL:    url,
		ImageWidth:  300,
		ImageHeight: 300,
		ScaleX:      1,
		ScaleY:      1,
	}
}
