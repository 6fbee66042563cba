package panel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"guise/internal/logging"
	"guise/internal/permissions"
	"guise/internal/scene"
	"guise/internal/switcher"
	"guise/internal/variant"
	"guise/internal/variantstore"
)

// ErrLiveVariant indicates a removal was refused because the record's image
// is currently shown by one of the target items.
var ErrLiveVariant = errors.New("variant is the live image")

// ErrNotPermitted indicates the acting player lacks authorship over a target
// item's layer.
var ErrNotPermitted = errors.New("player may not edit variants here")

// ErrRecordNotFound indicates the referenced variant record is not in the
// focused item's list.
var ErrRecordNotFound = errors.New("variant record not found")

// Entry pairs a variant record with its display state.
type Entry struct {
	Record variant.Record
	// Live marks the record whose url matches the focused item's current
	// image.
	Live bool
}

// View is the panel's renderable state.
type View struct {
	// Focus is the image-bearing item whose variant list is shown; nil when
	// the selection holds none.
	Focus *scene.Item
	// Selected is how many items the selection holds, image-bearing or not.
	Selected int
	Entries  []Entry
	// CanEdit reports whether the acting player passes the permission gate
	// for the focused item.
	CanEdit bool
}

// Renderer receives the panel state after every refresh.
type Renderer interface {
	Render(view View) error
}

// Controller drives the variant panel. State lives in fields and is rebuilt
// from the host on every Refresh; actions re-fetch before mutating so a
// stale view never drives a write.
type Controller struct {
	host     scene.Host
	store    *variantstore.Store
	switcher *switcher.Switcher
	renderer Renderer
	logger   *slog.Logger
	playerID string

	selection []string
	focus     *scene.Item
	entries   []Entry
}

// NewController wires a panel controller acting as playerID.
func NewController(host scene.Host, store *variantstore.Store, sw *switcher.Switcher, renderer Renderer, playerID string, logger *slog.Logger) *Controller {
	return &Controller{
		host:     host,
		store:    store,
		switcher: sw,
		renderer: renderer,
		logger:   logging.WithComponent(logger, "panel"),
		playerID: playerID,
	}
}

// Refresh rebuilds the panel state from the host and renders it. The first
// image-bearing selected item becomes the focus; an empty or image-free
// selection renders an empty view.
func (c *Controller) Refresh(ctx context.Context) error {
	ids, err := c.host.Selection(ctx)
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}
	c.selection = ids
	c.focus = nil
	c.entries = nil

	if len(ids) > 0 {
		items, err := c.host.Items(ctx, ids...)
		if err != nil {
			return fmt.Errorf("load selected items: %w", err)
		}
		for i := range items {
			if items[i].HasImage() {
				c.focus = &items[i]
				break
			}
		}
	}

	if c.focus != nil {
		records, err := c.store.List(ctx, c.focus.ID)
		if err != nil {
			return fmt.Errorf("list variants: %w", err)
		}
		c.entries = make([]Entry, len(records))
		for i, record := range records {
			c.entries[i] = Entry{Record: record, Live: record.URL == c.focus.ImageURL}
		}
	}

	return c.render(ctx)
}

// Switch applies the record with the given id to every image-bearing
// selected item and refreshes.
func (c *Controller) Switch(ctx context.Context, recordID string) error {
	targets, record, err := c.resolve(ctx, recordID)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return c.Refresh(ctx)
	}
	if err := c.switcher.Apply(ctx, targets, record); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Add appends a variant built from asset to every image-bearing selected
// item, provided the acting player passes the permission gate for each.
func (c *Controller) Add(ctx context.Context, asset variantstore.Asset) error {
	targets, err := c.editableTargets(ctx)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return c.Refresh(ctx)
	}
	if err := c.store.Add(ctx, targets, asset); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Save captures each image-bearing selected item's live appearance as a new
// variant, under customName when given. Gated like Add.
func (c *Controller) Save(ctx context.Context, customName string) error {
	targets, err := c.editableTargets(ctx)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return c.Refresh(ctx)
	}
	if err := c.store.SaveCurrentState(ctx, targets, customName); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Remove deletes the record with the given id from every image-bearing
// selected item. Refused with ErrLiveVariant when any target currently
// shows the record's image; gated like Add.
func (c *Controller) Remove(ctx context.Context, recordID string) error {
	targets, record, err := c.resolve(ctx, recordID)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return c.Refresh(ctx)
	}
	if err := c.requirePermission(ctx, targets); err != nil {
		return err
	}

	items, err := c.host.Items(ctx, targets...)
	if err != nil {
		return fmt.Errorf("load target items: %w", err)
	}
	for _, item := range items {
		if item.ImageURL == record.URL {
			c.logger.WarnContext(ctx, "refusing to remove live variant",
				slog.String(logging.FieldItemID, item.ID),
				slog.String(logging.FieldRecordID, recordID))
			return fmt.Errorf("remove %s: %w", recordID, ErrLiveVariant)
		}
	}

	if err := c.store.Remove(ctx, targets, recordID); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// resolve re-reads the selection and the focused item's variant list, then
// picks out recordID. Every action goes through here so mutations never act
// on a stale view.
func (c *Controller) resolve(ctx context.Context, recordID string) ([]string, variant.Record, error) {
	targets, err := c.imageTargets(ctx)
	if err != nil {
		return nil, variant.Record{}, err
	}
	if len(targets) == 0 {
		c.logger.DebugContext(ctx, "no image-bearing items selected")
		return nil, variant.Record{}, nil
	}

	records, err := c.store.List(ctx, targets[0])
	if err != nil {
		return nil, variant.Record{}, fmt.Errorf("list variants: %w", err)
	}
	for _, record := range records {
		if record.ID == recordID {
			return targets, record, nil
		}
	}
	return nil, variant.Record{}, fmt.Errorf("resolve %s: %w", recordID, ErrRecordNotFound)
}

// imageTargets returns the ids of the selection's image-bearing items.
func (c *Controller) imageTargets(ctx context.Context) ([]string, error) {
	ids, err := c.host.Selection(ctx)
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := c.host.Items(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("load selected items: %w", err)
	}
	var targets []string
	for _, item := range items {
		if item.HasImage() {
			targets = append(targets, item.ID)
		}
	}
	return targets, nil
}

func (c *Controller) editableTargets(ctx context.Context) ([]string, error) {
	targets, err := c.imageTargets(ctx)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}
	if err := c.requirePermission(ctx, targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// requirePermission checks the gate for every target; a single refusal
// rejects the whole action rather than silently narrowing it.
func (c *Controller) requirePermission(ctx context.Context, targets []string) error {
	player, err := c.host.Player(ctx, c.playerID)
	if err != nil {
		return fmt.Errorf("resolve player: %w", err)
	}
	items, err := c.host.Items(ctx, targets...)
	if err != nil {
		return fmt.Errorf("load target items: %w", err)
	}
	for _, item := range items {
		if !permissions.CanAddVariants(player, item) {
			return fmt.Errorf("item %s: %w", item.ID, ErrNotPermitted)
		}
	}
	return nil
}

func (c *Controller) render(ctx context.Context) error {
	if c.renderer == nil {
		return nil
	}
	view := View{
		Focus:    c.focus,
		Selected: len(c.selection),
		Entries:  c.entries,
	}
	if c.focus != nil {
		player, err := c.host.Player(ctx, c.playerID)
		if err == nil {
			view.CanEdit = permissions.CanAddVariants(player, *c.focus)
		}
	}
	if err := c.renderer.Render(view); err != nil {
		return fmt.Errorf("render panel: %w", err)
	}
	return nil
}

// Entries returns the variant entries currently on display.
func (c *Controller) Entries() []Entry { return c.entries }

// Focus returns the focused item, or nil.
func (c *Controller) Focus() *scene.Item { return c.focus }
