// Package uuid generates time-ordered request identifiers.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. If the random source fails it falls back to
// a v4 UUID so callers never have to handle an error.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
