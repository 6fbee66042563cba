package scenedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"guise/internal/scene"
)

// Watch polls the scene for item changes every interval and invokes fn with
// the items whose updated_at advanced since the previous poll. It blocks
// until ctx is done. Poll failures are logged and retried on the next tick.
func (s *Scene) Watch(ctx context.Context, interval time.Duration, fn func([]scene.Item)) error {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	since := timestamp()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed, next, err := s.itemsChangedSince(ctx, since)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.WarnContext(ctx, "watch poll failed", slog.Any("error", err))
				continue
			}
			since = next
			if len(changed) > 0 {
				fn(changed)
			}
		}
	}
}

func (s *Scene) itemsChangedSince(ctx context.Context, since string) ([]scene.Item, string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+itemColumns+`, updated_at FROM items WHERE updated_at > ? ORDER BY updated_at, id`,
		since,
	)
	if err != nil {
		return nil, since, fmt.Errorf("query changed items: %w", err)
	}
	defer rows.Close()

	latest := since
	var changed []scene.Item
	for rows.Next() {
		var (
			item      scene.Item
			layer     string
			metadata  sql.NullString
			updatedAt string
		)
		if err := rows.Scan(
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
			&updatedAt,
		); err != nil {
			return nil, since, fmt.Errorf("scan changed item: %w", err)
		}
		item.Layer = scene.Layer(layer)
		if metadata.Valid && metadata.String != "" {
			var bag map[string]any
			if err := json.Unmarshal([]byte(metadata.String), &bag); err == nil {
				item.Metadata = bag
			}
		}
		changed = append(changed, item)
		if updatedAt > latest {
			latest = updatedAt
		}
	}
	return changed, latest, rows.Err()
}
