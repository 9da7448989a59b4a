// Package uuid generates time-ordered identifiers for database primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Version 7 embeds a millisecond timestamp in
// the high bits, so freshly inserted rows sort by creation time, which keeps
// index pages warm on append-heavy tables like expenses.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source is exhausted; fall back
		// to a random UUIDv4 rather than aborting the insert.
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID of any version.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
