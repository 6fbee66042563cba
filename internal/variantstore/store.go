package variantstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"guise/internal/logging"
	"guise/internal/scene"
	"guise/internal/variant"
)

// ErrInvalidAsset indicates an externally supplied asset description cannot
// become a variant record.
var ErrInvalidAsset = errors.New("invalid asset")

// Asset describes an externally supplied image used to create a variant,
// typically the result of the host's asset picker.
type Asset struct {
	URL    string
	Width  float64
	Height float64
	Name   string
	DPI    float64 // 0 leaves the variant without grid scale
	Offset *variant.Offset
}

// Store reads and mutates per-item variant lists through a scene host.
type Store struct {
	host   scene.Host
	logger *slog.Logger
}

// New constructs a Store around the provided host.
func New(host scene.Host, logger *slog.Logger) *Store {
	return &Store{host: host, logger: logging.WithComponent(logger, "variantstore")}
}

// List returns the variant list for one item. When the item carries no
// well-formed variant metadata yet, a record is synthesized from its live
// appearance, persisted, and returned as the sole entry; subsequent calls
// find valid metadata and perform no write. Items without an image yield an
// empty list and are never seeded.
func (s *Store) List(ctx context.Context, itemID string) ([]variant.Record, error) {
	items, err := s.host.Items(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("list variants for %s: %w", itemID, scene.ErrItemNotFound)
	}
	item := items[0]

	if records, ok := variant.RecordsFromMetadata(item.Metadata[variant.MetadataKey]); ok {
		return records, nil
	}

	if !item.HasImage() {
		s.logger.DebugContext(ctx, "item has no image, skipping seed", slog.String(logging.FieldItemID, itemID))
		return nil, nil
	}

	seed := liveRecord(item, "")
	err = s.host.UpdateItems(ctx, scene.MatchIDs(itemID), func(it *scene.Item) {
		// Re-check inside the transaction: another call may have seeded
		// the list between our read and this write.
		if _, ok := variant.RecordsFromMetadata(it.Metadata[variant.MetadataKey]); ok {
			return
		}
		writeRecords(it, []variant.Record{seed})
	})
	if err != nil {
		return nil, fmt.Errorf("seed variants: %w", err)
	}

	// Return what the transaction left behind rather than assuming our
	// seed won.
	items, err = s.host.Items(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("reload item: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("list variants for %s: %w", itemID, scene.ErrItemNotFound)
	}
	records, _ := variant.RecordsFromMetadata(items[0].Metadata[variant.MetadataKey])
	s.logger.InfoContext(ctx, "seeded initial variant",
		slog.String(logging.FieldItemID, itemID),
		slog.String(logging.FieldRecordID, seed.ID))
	return records, nil
}

// Add appends a new record built from asset to every target item, assigning
// one fresh id and rotation 0. Items whose list already holds a record with
// the same url are left untouched. Missing or malformed existing metadata is
// treated as an empty list, not seeded.
func (s *Store) Add(ctx context.Context, itemIDs []string, asset Asset) error {
	if len(itemIDs) == 0 {
		s.logger.DebugContext(ctx, "add skipped, no target items")
		return nil
	}

	record, err := recordFromAsset(asset)
	if err != nil {
		return err
	}

	err = s.host.UpdateItems(ctx, scene.MatchIDs(itemIDs...), func(it *scene.Item) {
		existing, _ := variant.RecordsFromMetadata(it.Metadata[variant.MetadataKey])
		for _, present := range existing {
			if present.URL == record.URL {
				return
			}
		}
		writeRecords(it, append(existing, record))
	})
	if err != nil {
		return fmt.Errorf("add variant: %w", err)
	}

	s.logger.InfoContext(ctx, "variant added",
		slog.String(logging.FieldRecordID, record.ID),
		slog.String("url", record.URL),
		slog.Int("items", len(itemIDs)))
	return nil
}

// Remove drops the record with the given id from every target item's list.
// Malformed entries present in stored metadata are discarded as a byproduct
// of the parse-then-filter rewrite. The live-image guard is the caller's
// responsibility.
func (s *Store) Remove(ctx context.Context, itemIDs []string, recordID string) error {
	if len(itemIDs) == 0 {
		s.logger.DebugContext(ctx, "remove skipped, no target items")
		return nil
	}

	err := s.host.UpdateItems(ctx, scene.MatchIDs(itemIDs...), func(it *scene.Item) {
		existing, ok := variant.RecordsFromMetadata(it.Metadata[variant.MetadataKey])
		if !ok {
			return
		}
		kept := existing[:0]
		for _, record := range existing {
			if record.ID != recordID {
				kept = append(kept, record)
			}
		}
		writeRecords(it, kept)
	})
	if err != nil {
		return fmt.Errorf("remove variant: %w", err)
	}

	s.logger.InfoContext(ctx, "variant removed",
		slog.String(logging.FieldRecordID, recordID),
		slog.Int("items", len(itemIDs)))
	return nil
}

// SaveCurrentState appends a record captured from each target item's own
// live appearance, under a fresh id per item. No url deduplication applies:
// the same asset in a different pose is a valid separate entry.
func (s *Store) SaveCurrentState(ctx context.Context, itemIDs []string, customName string) error {
	if len(itemIDs) == 0 {
		s.logger.DebugContext(ctx, "save skipped, no target items")
		return nil
	}

	err := s.host.UpdateItems(ctx, scene.MatchIDs(itemIDs...), func(it *scene.Item) {
		if !it.HasImage() {
			return
		}
		existing, _ := variant.RecordsFromMetadata(it.Metadata[variant.MetadataKey])
		writeRecords(it, append(existing, liveRecord(*it, customName)))
	})
	if err != nil {
		return fmt.Errorf("save current state: %w", err)
	}

	s.logger.InfoContext(ctx, "current state saved", slog.Int("items", len(itemIDs)))
	return nil
}

// liveRecord captures an item's current appearance as a variant record.
func liveRecord(item scene.Item, customName string) variant.Record {
	name := strings.TrimSpace(customName)
	if name == "" {
		name = strings.TrimSpace(item.Name)
	}
	if name == "" {
		name = variant.NameFromURL(item.ImageURL)
	}

	record := variant.Record{
		ID:       uuid.NewString(),
		URL:      item.ImageURL,
		Width:    item.ImageWidth,
		Height:   item.ImageHeight,
		Name:     name,
		Rotation: variant.Float(item.Rotation),
	}
	if item.Grid.DPI > 0 {
		record.DPI = variant.Float(item.Grid.DPI)
		record.Offset = &variant.Offset{X: item.Grid.Offset.X, Y: item.Grid.Offset.Y}
	}
	return record
}

func recordFromAsset(asset Asset) (variant.Record, error) {
	url := strings.TrimSpace(asset.URL)
	if url == "" {
		return variant.Record{}, fmt.Errorf("%w: url is empty", ErrInvalidAsset)
	}
	if asset.Width <= 0 || asset.Height <= 0 {
		return variant.Record{}, fmt.Errorf("%w: dimensions must be positive", ErrInvalidAsset)
	}

	name := strings.TrimSpace(asset.Name)
	if name == "" {
		name = variant.NameFromURL(url)
	}

	record := variant.Record{
		ID:       uuid.NewString(),
		URL:      url,
		Width:    asset.Width,
		Height:   asset.Height,
		Name:     name,
		Rotation: variant.Float(0),
	}
	if asset.DPI > 0 {
		record.DPI = variant.Float(asset.DPI)
	}
	if asset.Offset != nil {
		offset := *asset.Offset
		record.Offset = &offset
	}
	return record, nil
}

// writeRecords replaces only the variant key in the item's metadata bag,
// leaving sibling keys intact.
func writeRecords(item *scene.Item, records []variant.Record) {
	if item.Metadata == nil {
		item.Metadata = make(map[string]any, 1)
	}
	item.Metadata[variant.MetadataKey] = variant.MetadataValue(records)
}
