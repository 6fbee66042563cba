// Package config loads, normalizes, and validates guise configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/guise/config.toml or a
// project-local guise.toml. The Config type centralizes every knob the CLI
// needs: scene database location, acting player identity, grid defaults,
// and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical roles, and clear validation errors.
package config
