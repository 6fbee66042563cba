package scene

import (
	"context"
	"errors"
)

// ErrItemNotFound indicates a referenced item does not exist in the scene.
var ErrItemNotFound = errors.New("scene item not found")

// ErrPlayerNotFound indicates the acting player is unknown to the host.
var ErrPlayerNotFound = errors.New("scene player not found")

// Host is the surrounding tabletop application's scene API. guise never
// implements scene semantics itself; it drives the host through this
// interface and trusts its concurrency contract.
//
// UpdateItems applies mutate to every item accepted by match inside one
// host-mediated transaction. The read-modify-write per item is atomic with
// respect to other UpdateItems calls on the same item; separate calls issued
// back-to-back are not serialized by the host.
type Host interface {
	// Items returns the items with the given ids, or every item in the
	// scene when no ids are supplied. Unknown ids are skipped, not errors.
	Items(ctx context.Context, ids ...string) ([]Item, error)

	// UpdateItems transactionally mutates all items accepted by match.
	UpdateItems(ctx context.Context, match func(Item) bool, mutate func(*Item)) error

	// Selection returns the ids of the currently selected items.
	Selection(ctx context.Context) ([]string, error)

	// Player resolves the acting user's role and grants.
	Player(ctx context.Context, playerID string) (Player, error)
}

// MatchIDs builds an UpdateItems predicate accepting exactly the given ids.
func MatchIDs(ids ...string) func(Item) bool {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(item Item) bool {
		_, ok := set[item.ID]
		return ok
	}
}
