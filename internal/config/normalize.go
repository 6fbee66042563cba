package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlayer()
	c.normalizeGrid()
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayer() {
	c.Player.ID = strings.TrimSpace(c.Player.ID)
	if c.Player.ID == "" {
		c.Player.ID = defaultPlayerID
	}
	c.Player.Name = strings.TrimSpace(c.Player.Name)
	if c.Player.Name == "" {
		c.Player.Name = defaultPlayerName
	}
	c.Player.Role = strings.ToLower(strings.TrimSpace(c.Player.Role))
	if c.Player.Role == "" {
		c.Player.Role = defaultPlayerRole
	}
}

func (c *Config) normalizeGrid() {
	if c.Grid.DefaultDPI <= 0 {
		c.Grid.DefaultDPI = defaultGridDPI
	}
}

func (c *Config) normalizeWatch() {
	if c.Watch.PollIntervalMS <= 0 {
		c.Watch.PollIntervalMS = defaultPollIntervalMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
