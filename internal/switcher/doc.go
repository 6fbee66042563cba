// Package switcher applies a chosen variant record to scene items while
// keeping their on-screen footprint unchanged.
//
// Swapping assets with different native resolutions would normally resize
// the item; the switcher compensates by recomputing scale from the footprint
// measured under the outgoing asset. It trusts the codec's guarantee that a
// parsed record has positive dimensions and does not re-validate.
package switcher
