package staticfile

import (
	"os"
	"path/filepath"
	"strings"
)

// safePath reports whether a decoded relative path may be resolved against
// the root directory.
//
// The check is a whitelist over path components: only the current-directory
// marker "." and normal named segments are allowed. Any parent-directory
// marker, root marker, or platform prefix (e.g. a Windows drive letter or UNC
// share) makes the whole path unsafe, wherever it occurs. Paths are never
// normalized first; "foo/../foo" is unsafe even though it would clean to a
// safe equivalent.
//
// safePath is pure and never touches the filesystem.
func safePath(p string) bool {
	if len(p) > 0 && isPathSep(p[0]) {
		// root marker
		return false
	}
	if filepath.VolumeName(p) != "" {
		// platform prefix
		return false
	}
	for _, seg := range splitSegments(p) {
		switch seg {
		case ".":
			// current-directory marker, harmless
		case "..":
			return false
		default:
			// a prefix embedded mid-string (e.g. "foo/C:/bar" on Windows)
			// is just as unsafe as a leading one
			if filepath.VolumeName(seg) != "" {
				return false
			}
		}
	}
	return true
}

// splitSegments breaks a path into its components using the host platform's
// separator rules. Empty segments produced by doubled separators are elided,
// matching how the operating system resolves them.
func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == rune(os.PathSeparator)
	})
}

func isPathSep(c byte) bool {
	return c == '/' || c == os.PathSeparator
}
