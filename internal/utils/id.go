package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new opaque document identifier.
func GenerateID() string {
	return uuid.NewString()
}

// GenerateStorageKey returns a collision-free object name for the
// uploaded binary, preserving the original file extension.
func GenerateStorageKey(ext string) string {
	return uuid.NewString() + strings.ToLower(ext)
}
