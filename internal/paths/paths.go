package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts an absolute path to a root-relative canonical path
// - Resolves symlinks to real paths
// - Makes the path relative to the analysis root
// - Converts backslashes to forward slashes
func Canonicalize(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinRoot checks if a path is inside the analysis root.
// A path that escapes the root (symlink or traversal artifact) is not an
// error for discovery; it simply contributes no module.
func IsWithinRoot(path string, root string) bool {
	canonical, err := Canonicalize(path, root)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}

// Normalize normalizes a path by converting backslashes to forward slashes
func Normalize(path string) string {
	return filepath.ToSlash(path)
}

// JoinRoot joins the analysis root with a canonical path using OS separators
func JoinRoot(root string, canonicalPath string) string {
	parts := strings.Split(Normalize(canonicalPath), "/")
	return filepath.Join(append([]string{root}, parts...)...)
}
