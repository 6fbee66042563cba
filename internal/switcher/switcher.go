package switcher

import (
	"context"
	"fmt"
	"log/slog"

	"guise/internal/logging"
	"guise/internal/scene"
	"guise/internal/variant"
)

// Switcher swaps item images through the host while preserving footprints.
type Switcher struct {
	host   scene.Host
	logger *slog.Logger
}

// New constructs a Switcher around the provided host.
func New(host scene.Host, logger *slog.Logger) *Switcher {
	return &Switcher{host: host, logger: logging.WithComponent(logger, "switcher")}
}

// Apply switches every image-bearing target item to record. For each item
// the rendered footprint (native size times scale) measured before the swap
// is restored afterwards by recomputing scale against the record's native
// dimensions. Grid settings merge partially: only dpi and offset defined on
// the record overwrite the item's. A defined rotation replaces the item's;
// the display name always follows the record. Items without an image are
// skipped.
func (s *Switcher) Apply(ctx context.Context, itemIDs []string, record variant.Record) error {
	if len(itemIDs) == 0 {
		s.logger.DebugContext(ctx, "apply skipped, no target items",
			slog.String(logging.FieldRecordID, record.ID))
		return nil
	}

	err := s.host.UpdateItems(ctx, scene.MatchIDs(itemIDs...), func(item *scene.Item) {
		if !item.HasImage() {
			return
		}

		visualWidth := item.ImageWidth * item.ScaleX
		visualHeight := item.ImageHeight * item.ScaleY

		item.ImageURL = record.URL
		item.ImageWidth = record.Width
		item.ImageHeight = record.Height
		item.ScaleX = visualWidth / record.Width
		item.ScaleY = visualHeight / record.Height

		if record.DPI != nil {
			item.Grid.DPI = *record.DPI
		}
		if record.Offset != nil {
			item.Grid.Offset = scene.Vector2{X: record.Offset.X, Y: record.Offset.Y}
		}
		if record.Rotation != nil {
			item.Rotation = *record.Rotation
		}
		item.Name = record.Name
	})
	if err != nil {
		return fmt.Errorf("apply variant: %w", err)
	}

	s.logger.InfoContext(ctx, "variant applied",
		slog.String(logging.FieldRecordID, record.ID),
		slog.String("url", record.URL),
		slog.Int("items", len(itemIDs)))
	return nil
}
