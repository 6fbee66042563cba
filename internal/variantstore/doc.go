// Package variantstore is the single source of truth for reading and
// mutating an item's variant list, persisted through the host's per-item
// metadata bag.
//
// The store never touches metadata keys other than variant.MetadataKey and
// relies on the host's update transaction for per-item atomicity. The first
// read of an item without variant metadata seeds the list with a record
// captured from the item's live appearance, so the original look is never
// lost once the feature is used.
//
// The live-image removal guard is deliberately not enforced here; it is a
// caller contract owned by the panel layer.
package variantstore
