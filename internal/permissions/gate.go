package permissions

import "guise/internal/scene"

// CanAddVariants reports whether the player may add variants to item:
// masters always may; other players need a creation grant for the item's
// layer.
func CanAddVariants(player scene.Player, item scene.Item) bool {
	if player.Role == scene.RoleMaster {
		return true
	}
	return player.MayCreateOn(item.Layer)
}

// CanRemoveVariants mirrors CanAddVariants; adding and removing records are
// the same level of authorship over an item's variant list.
func CanRemoveVariants(player scene.Player, item scene.Item) bool {
	return CanAddVariants(player, item)
}
