package scenedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"guise/internal/scene"
)

const itemColumns = "id, name, layer, created_by, image_url, image_width, image_height, scale_x, scale_y, rotation, grid_dpi, grid_offset_x, grid_offset_y, metadata_json"

// CreateItem inserts a new scene item, assigning an id when none is set and
// defaulting zero scales to 1.
func (s *Scene) CreateItem(ctx context.Context, item scene.Item) (scene.Item, error) {
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	if item.Layer == "" {
		item.Layer = scene.LayerCharacter
	}
	if item.ScaleX == 0 {
		item.ScaleX = 1
	}
	if item.ScaleY == 0 {
		item.ScaleY = 1
	}

	metadataJSON, err := encodeMetadata(item.Metadata)
	if err != nil {
		return scene.Item{}, err
	}

	now := timestamp()
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO items (`+itemColumns+`, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.Name,
		string(item.Layer),
		item.CreatedBy,
		item.ImageURL,
		item.ImageWidth,
		item.ImageHeight,
		item.ScaleX,
		item.ScaleY,
		item.Rotation,
		item.Grid.DPI,
		item.Grid.Offset.X,
		item.Grid.Offset.Y,
		metadataJSON,
		now,
		now,
	)
	if err != nil {
		return scene.Item{}, fmt.Errorf("insert item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item by id, reporting whether it existed.
func (s *Scene) DeleteItem(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Items returns the items with the given ids (unknown ids skipped), or
// every item ordered by creation time when no ids are supplied.
func (s *Scene) Items(ctx context.Context, ids ...string) ([]scene.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any
	if len(ids) > 0 {
		query += ` WHERE id IN (` + makePlaceholders(len(ids)) + `)`
		args = make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []scene.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItems applies mutate to every stored item accepted by match inside
// a single transaction. The item id is immutable; changes to it by the
// mutator are ignored.
func (s *Scene) UpdateItems(ctx context.Context, match func(scene.Item) bool, mutate func(*scene.Item)) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at, id`)
	if err != nil {
		return fmt.Errorf("query items for update: %w", err)
	}

	var matched []scene.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return err
		}
		if match(item) {
			matched = append(matched, item)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, item := range matched {
		id := item.ID
		mutate(&item)
		item.ID = id

		metadataJSON, err := encodeMetadata(item.Metadata)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			`UPDATE items
             SET name = ?, layer = ?, created_by = ?, image_url = ?,
                 image_width = ?, image_height = ?, scale_x = ?, scale_y = ?,
                 rotation = ?, grid_dpi = ?, grid_offset_x = ?, grid_offset_y = ?,
                 metadata_json = ?, updated_at = ?
             WHERE id = ?`,
			item.Name,
			string(item.Layer),
			item.CreatedBy,
			item.ImageURL,
			item.ImageWidth,
			item.ImageHeight,
			item.ScaleX,
			item.ScaleY,
			item.Rotation,
			item.Grid.DPI,
			item.Grid.Offset.X,
			item.Grid.Offset.Y,
			metadataJSON,
			timestamp(),
			id,
		)
		if err != nil {
			return fmt.Errorf("update item %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

func scanItem(scanner interface{ Scan(dest ...any) error }) (scene.Item, error) {
	var (
		item     scene.Item
		layer    string
		metadata sql.NullString
	)

	if err := scanner.Scan(
		&item.ID,
		&item.Name,
		&layer,
		&item.CreatedBy,
		&item.ImageURL,
		&item.ImageWidth,
		&item.ImageHeight,
		&item.ScaleX,
		&item.ScaleY,
		&item.Rotation,
		&item.Grid.DPI,
		&item.Grid.Offset.X,
		&item.Grid.Offset.Y,
		&metadata,
	); err != nil {
		return scene.Item{}, fmt.Errorf("scan item: %w", err)
	}

	item.Layer = scene.Layer(layer)
	if metadata.Valid && metadata.String != "" {
		var bag map[string]any
		if err := json.Unmarshal([]byte(metadata.String), &bag); err == nil {
			item.Metadata = bag
		}
	}
	return item, nil
}

func encodeMetadata(bag map[string]any) (any, error) {
	if len(bag) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(bag)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return string(encoded), nil
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
