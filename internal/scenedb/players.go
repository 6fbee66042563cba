package scenedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"guise/internal/scene"
)

// UpsertPlayer inserts or replaces a roster entry.
func (s *Scene) UpsertPlayer(ctx context.Context, player scene.Player) error {
	var layersJSON any
	if len(player.CreateLayers) > 0 {
		encoded, err := json.Marshal(player.CreateLayers)
		if err != nil {
			return fmt.Errorf("marshal create layers: %w", err)
		}
		layersJSON = string(encoded)
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO players (id, name, role, create_layers_json) VALUES (?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role,
             create_layers_json = excluded.create_layers_json`,
		player.ID,
		player.Name,
		string(player.Role),
		layersJSON,
	)
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

// Player resolves a roster entry by id.
func (s *Scene) Player(ctx context.Context, playerID string) (scene.Player, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, name, role, create_layers_json FROM players WHERE id = ?`,
		playerID,
	)

	var (
		player     scene.Player
		role       string
		layersJSON sql.NullString
	)
	err := row.Scan(&player.ID, &player.Name, &role, &layersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return scene.Player{}, fmt.Errorf("player %s: %w", playerID, scene.ErrPlayerNotFound)
	}
	if err != nil {
		return scene.Player{}, fmt.Errorf("get player: %w", err)
	}

	player.Role = scene.Role(role)
	if layersJSON.Valid && layersJSON.String != "" {
		var layers []scene.Layer
		if err := json.Unmarshal([]byte(layersJSON.String), &layers); err == nil {
			player.CreateLayers = layers
		}
	}
	return player, nil
}
