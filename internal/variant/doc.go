// Package variant defines the image-variant record and the codec that guards
// the one piece of persisted state guise owns: the variant list stored under
// a namespaced key in each item's metadata bag.
//
// Metadata is shared scene state. It may have been hand-edited or written by
// an incompatible extension version, so ParseRecord is a strict structural
// predicate rather than a sanitizer: anything that is not exactly the
// documented shape is rejected, never coerced or defaulted. ParseList applies
// the opposite policy at the list level and silently drops invalid entries so
// one corrupt record never takes the whole panel down.
package variant
