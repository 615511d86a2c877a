package entity

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a 32 character lowercase hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsValidID reports whether s looks like an identifier produced by
// NewID. Malformed path IDs are rejected before hitting the database.
func IsValidID(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
