// Package scenedb is the reference scene.Host implementation, backed by
// SQLite. It exists so guise works standalone: the CLI, the tests, and any
// embedding that has no live tabletop application drive their scene through
// it.
//
// The Scene type persists items (with their metadata bags as JSON), the
// player roster, and the current selection. UpdateItems performs the whole
// read-modify-write inside one database transaction, which is what gives
// Host its per-item atomicity contract. A file lock next to the database
// keeps concurrent guise processes from interleaving mutations; this
// serializes back-to-back store calls as well, a deliberate strengthening
// over hosts that only promise per-transaction atomicity.
//
// Schema changes bump the version in schema.go; the database is scene
// state, not an archive, so users recreate it to adopt a new schema.
package scenedb
