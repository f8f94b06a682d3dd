// Package gazdb converts a place-name gazetteer stored in PostGIS into a
// compact SQLite database with a full-text search index.
package gazdb

var (
	// Version of gazdb, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
