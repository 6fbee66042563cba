package scenedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

const selectionKey = "selection"

// Selection returns the ids of the currently selected items. An unset
// selection is empty, not an error.
func (s *Scene) Selection(ctx context.Context) ([]string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM scene_state WHERE key = ?`, selectionKey)

	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}
	return ids, nil
}

// SetSelection replaces the current selection. Ids are kept as given;
// resolving them against live items is the reader's concern.
func (s *Scene) SetSelection(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO scene_state (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		selectionKey,
		string(encoded),
	)
	if err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}
