// Command guise manages per-item image variants in a tabletop scene: listing
// items, curating variant lists, and switching images while preserving each
// item's rendered footprint.
package main
