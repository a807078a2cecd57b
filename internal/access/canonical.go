package access

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize returns the absolute, symlink-resolved form of path. All
// policy comparisons operate on this form: a symlink's write permission is
// its target's, never its literal location's.
//
// Paths that do not exist yet (the common case for a first write) are
// resolved through their deepest existing ancestor, so a symlinked parent
// directory still canonicalizes correctly.
func Canonicalize(path string) (string, error) {
	expanded := path
	if strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			expanded = filepath.Join(home, path[2:])
		}
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	return resolveWalkUp(abs), nil
}

// resolveWalkUp resolves symlinks in as much of the path as exists, then
// rejoins the nonexistent tail.
func resolveWalkUp(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved
	}

	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(resolveWalkUp(parent), filepath.Base(path))
}
