package app

import (
	"path"
	"strings"
)

// cleanPath normalizes a URL path for route registration and mounting.
// It ensures the path starts with '/' and applies path.Clean to collapse
// duplicates (e.g., "/ops//metrics/" -> "/ops/metrics").
//
// Special cases:
//   - Empty input returns "/"
//   - The result never ends with a trailing slash unless it is the root "/"
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
