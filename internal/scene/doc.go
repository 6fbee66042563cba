// Package scene defines the domain vocabulary shared across guise: items,
// players, layers, and the Host interface through which the surrounding
// tabletop application exposes its scene graph.
//
// Host implementations own persistence, replication, and authority over
// mutations. guise only reads items, resolves the current selection, and
// applies read-modify-write mutations through Host.UpdateItems, which every
// implementation must make atomic per item.
//
// Keep this package free of dependencies on the rest of the module so stores,
// switchers, and hosts can all build on it without cycles.
package scene
