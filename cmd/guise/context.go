package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"guise/internal/config"
	"guise/internal/logging"
	"guise/internal/panel"
	"guise/internal/scene"
	"guise/internal/scenedb"
	"guise/internal/switcher"
	"guise/internal/variantstore"
)

type commandContext struct {
	configFlag *string
	playerFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, playerFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		playerFlag: playerFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// playerID returns the acting player, the --player flag winning over the
// configured identity.
func (c *commandContext) playerID() string {
	if c.playerFlag != nil && strings.TrimSpace(*c.playerFlag) != "" {
		return strings.TrimSpace(*c.playerFlag)
	}
	if cfg, err := c.ensureConfig(); err == nil {
		return cfg.Player.ID
	}
	return ""
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

// session bundles everything a command needs against one open scene.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	scene    *scenedb.Scene
	store    *variantstore.Store
	switcher *switcher.Switcher
}

// withScene opens the scene database, registers the configured player, runs
// fn, and closes the scene.
func (c *commandContext) withScene(cmd *cobra.Command, fn func(context.Context, *session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.newLogger()
	if err != nil {
		return err
	}

	sc, err := scenedb.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open scene: %w", err)
	}
	defer func() { _ = sc.Close() }()

	ctx := cmd.Context()
	if err := c.registerPlayer(ctx, cfg, sc); err != nil {
		return err
	}

	return fn(ctx, &session{
		cfg:      cfg,
		logger:   logger,
		scene:    sc,
		store:    variantstore.New(sc, logger),
		switcher: switcher.New(sc, logger),
	})
}

// registerPlayer keeps the configured identity in the roster so permission
// checks resolve. A --player override referring to someone else is left to
// the roster as-is.
func (c *commandContext) registerPlayer(ctx context.Context, cfg *config.Config, sc *scenedb.Scene) error {
	if cfg.Player.ID == "" {
		return nil
	}
	role, ok := scene.ParseRole(cfg.Player.Role)
	if !ok {
		return fmt.Errorf("configured player role %q is not valid", cfg.Player.Role)
	}
	if err := sc.UpsertPlayer(ctx, scene.Player{
		ID:   cfg.Player.ID,
		Name: cfg.Player.Name,
		Role: role,
	}); err != nil {
		return fmt.Errorf("register player: %w", err)
	}
	return nil
}

func (c *commandContext) newPanel(cmd *cobra.Command, ses *session, renderer panel.Renderer) *panel.Controller {
	if renderer == nil {
		renderer = newPanelRenderer(cmd.OutOrStdout())
	}
	return panel.NewController(
		ses.scene,
		ses.store,
		ses.switcher,
		renderer,
		c.playerID(),
		ses.logger,
	)
}

// nopRenderer suppresses panel output for JSON commands.
type nopRenderer struct{}

func (nopRenderer) Render(panel.View) error { return nil }

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
