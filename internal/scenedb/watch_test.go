package scenedb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"guise/internal/scene"
	"guise/internal/testsupport"
)

func TestWatchReportsChangedItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	sc := testsupport.MustOpenScene(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changes := make(chan []scene.Item, 8)
	done := make(chan error, 1)
	go func() {
		done <- sc.Watch(ctx, 20*time.Millisecond, func(items []scene.Item) {
			changes <- items
		})
	}()

	// Let the watcher take its baseline before the first change.
	time.Sleep(50 * time.Millisecond)
	item := testsupport.SeedItem(t, sc, testsupport.ImageItem("Token", "https://img.test/a.png"))

	select {
	case items := <-changes:
		if len(items) != 1 || items[0].ID != item.ID {
			t.Fatalf("changed = %+v, want the created item", items)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for create notification")
	}

	err := sc.UpdateItems(ctx, scene.MatchIDs(item.ID), func(it *scene.Item) {
		it.Name = "Renamed"
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	select {
	case items := <-changes:
		if len(items) != 1 || items[0].Name != "Renamed" {
			t.Fatalf("changed = %+v, want the renamed item", items)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for update notification")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("watch returned %v, want context cancellation", err)
	}
}
