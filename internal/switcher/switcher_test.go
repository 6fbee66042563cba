package switcher_test

import (
	"context"
	"math"
	"testing"

	"guise/internal/logging"
	"guise/internal/scene"
	"guise/internal/switcher"
	"guise/internal/testsupport"
	"guise/internal/variant"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestApplyPreservesFootprint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sc := testsupport.MustOpenScene(t, cfg)
	sw := switcher.New(sc, logging.NewNop())
	ctx := context.Background()

	item := testsupport.SeedItem(t, sc, scene.Item{
		Name:        "Goblin",
		Layer:       scene.LayerCharacter,
		ImageURL:    "https://img.test/goblin.png",
		ImageWidth:  300,
		ImageHeight: 400,
		ScaleX:      0.5,
		ScaleY:      0.25,
	})
	wantWidth := item.VisualWidth()
	wantHeight := item.VisualHeight()

	record := variant.Record{
		ID:     "r1",
		URL:    "https://img.test/goblin-rage.png",
		Width:  120,
		Height: 800,
		Name:   "Goblin Rage",
	}
	if err := sw.Apply(ctx, []string{item.ID}, record); err != nil {
		t.Fatalf("apply: %v", err)
	}

	items, err := sc.Items(ctx, item.ID)
	if err != nil || len(items) != 1 {
		t.Fatalf("reload: %v", err)
	}
	got := items[0]
	if got.ImageURL != record.URL || got.ImageWidth != 120 || got.ImageHeight != 800 {
		t.Fatalf("image not swapped: %q %vx%v", got.ImageURL, got.ImageWidth, got.ImageHeight)
	}
	if !almostEqual(got.VisualWidth(), wantWidth) || !almostEqual(got.VisualHeight(), wantHeight) {
		t.Fatalf("footprint %vx%v, want %vx%v", got.VisualWidth(), got.VisualHeight(), wantWidth, wantHeight)
	}
	if got.Name != "Goblin Rage" {
		t.Fatalf("name = %q", got.Name)
	}
}

func TestApplyMergesGridPartially(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sc := testsupport.MustOpenScene(t, cfg)
	sw := switcher.New(sc, logging.NewNop())
	ctx := context.Background()

	item := testsupport.SeedItem(t, sc, scene.Item{
		Name:        "Token",
		ImageURL:    "https://img.test/a.png",
		ImageWidth:  100,
		ImageHeight: 100,
		ScaleX:      1,
		ScaleY:      1,
		Rotation:    90,
		Grid:        scene.Grid{DPI: 150, Offset: scene.Vector2{X: 5, Y: 5}},
	})

	// Only dpi defined: offset and rotation stay.
	record := variant.Record{
		ID: "r1", URL: "https://img.test/b.png", Width: 100, Height: 100,
		Name: "B", DPI: variant.Float(300),
	}
	if err := sw.Apply(ctx, []string{item.ID}, record); err != nil {
		t.Fatalf("apply: %v", err)
	}
	items, _ := sc.Items(ctx, item.ID)
	got := items[0]
	if got.Grid.DPI != 300 {
		t.Fatalf("dpi = %v, want 300", got.Grid.DPI)
	}
	if got.Grid.Offset.X != 5 || got.Grid.Offset.Y != 5 {
		t.Fatalf("offset overwritten: %v", got.Grid.Offset)
	}
	if got.Rotation != 90 {
		t.Fatalf("rotation = %v, want 90 unchanged", got.Rotation)
	}

	// Offset and rotation defined: both replace.
	record = variant.Record{
		ID: "r2", URL: "https://img.test/c.png", Width: 100, Height: 100,
		Name: "C", Offset: &variant.Offset{X: 1, Y: 2}, Rotation: variant.Float(0),
	}
	if err := sw.Apply(ctx, []string{item.ID}, record); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	items, _ = sc.Items(ctx, item.ID)
	got = items[0]
	if got.Grid.Offset.X != 1 || got.Grid.Offset.Y != 2 {
		t.Fatalf("offset = %v, want 1,2", got.Grid.Offset)
	}
	if got.Rotation != 0 {
		t.Fatalf("rotation = %v, want 0", got.Rotation)
	}
	if got.Grid.DPI != 300 {
		t.Fatalf("dpi = %v, want 300 unchanged", got.Grid.DPI)
	}
}

func TestApplySkipsImagelessItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sc := testsupport.MustOpenScene(t, cfg)
	sw := switcher.New(sc, logging.NewNop())
	ctx := context.Background()

	marker := testsupport.SeedItem(t, sc, scene.Item{Name: "Marker", Layer: scene.LayerProp})
	token := testsupport.SeedItem(t, sc, testsupport.ImageItem("Token", "https://img.test/a.png"))

	record := variant.Record{ID: "r1", URL: "https://img.test/b.png", Width: 150, Height: 150, Name: "B"}
	if err := sw.Apply(ctx, []string{marker.ID, token.ID}, record); err != nil {
		t.Fatalf("apply: %v", err)
	}

	items, err := sc.Items(ctx, marker.ID, token.ID)
	if err != nil || len(items) != 2 {
		t.Fatalf("reload: %v", err)
	}
	for _, got := range items {
		switch got.ID {
		case marker.ID:
			if got.ImageURL != "" || got.Name != "Marker" {
				t.Fatalf("imageless item mutated: %+v", got)
			}
		case token.ID:
			if got.ImageURL != record.URL {
				t.Fatalf("token not switched: %q", got.ImageURL)
			}
		}
	}
}

func TestApplyRoundTripRestoresScale(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sc := testsupport.MustOpenScene(t, cfg)
	sw := switcher.New(sc, logging.NewNop())
	ctx := context.Background()

	item := testsupport.SeedItem(t, sc, scene.Item{
		Name:        "Token",
		ImageURL:    "https://img.test/a.png",
		ImageWidth:  300,
		ImageHeight: 300,
		ScaleX:      2,
		ScaleY:      2,
	})

	there := variant.Record{ID: "r1", URL: "https://img.test/b.png", Width: 512, Height: 512, Name: "B"}
	back := variant.Record{ID: "r0", URL: "https://img.test/a.png", Width: 300, Height: 300, Name: "A"}

	if err := sw.Apply(ctx, []string{item.ID}, there); err != nil {
		t.Fatalf("apply there: %v", err)
	}
	if err := sw.Apply(ctx, []string{item.ID}, back); err != nil {
		t.Fatalf("apply back: %v", err)
	}

	items, _ := sc.Items(ctx, item.ID)
	got := items[0]
	if !almostEqual(got.ScaleX, 2) || !almostEqual(got.ScaleY, 2) {
		t.Fatalf("scale after round trip = %v/%v, want 2/2", got.ScaleX, got.ScaleY)
	}
}

func TestApplyEmptyTargetsIsNoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sc := testsupport.MustOpenScene(t, cfg)
	sw := switcher.New(sc, logging.NewNop())

	record := variant.Record{ID: "r1", URL: "https://img.test/b.png", Width: 10, Height: 10, Name: "B"}
	if err := sw.Apply(context.Background(), nil, record); err != nil {
		t.Fatalf("apply with no targets: %v", err)
	}
}
