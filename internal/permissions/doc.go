// Package permissions answers whether an acting player may manage the
// variants of a scene item.
//
// The answers are advisory: they govern which affordances the panel exposes.
// The host remains the authority over actual mutations, so nothing here
// blocks a Store call issued by other means.
package permissions
