package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateEntityID creates a standardized, human-readable entity ID.
// Format: {kind}-{8charHexUUID}
//
// Example:
//   - Input: kind="node"
//   - Output: "node-a3f8e2b1"
//
// The generated IDs are:
//   - Short enough to print in traces and CLI output
//   - Globally unique via UUID suffix
//   - Consistent across all entity types (nodes, fleets)
func GenerateEntityID(kind string) string {
	return kind + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
