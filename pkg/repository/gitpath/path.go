// Package gitpath holds the path types used between the working tree and
// the repository: slash-separated paths relative to the repository root, and
// the absolute root they are resolved against.
package gitpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// RelativePath is a normalized, slash-separated path relative to the
// repository root, the form git uses for tree entries and the index.
// Example: "Assets/Prefabs/Player.prefab"
type RelativePath string

// RepositoryRoot is the absolute path of a working tree root.
type RepositoryRoot string

// New normalizes p and validates it as a repository-relative path.
// Backslashes are accepted on input and converted to forward slashes.
func New(p string) (RelativePath, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("empty path")
	}
	rp := RelativePath(p).Normalize()
	if !rp.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", p)
	}
	return rp, nil
}

// String returns the path as a string
func (rp RelativePath) String() string {
	return string(rp)
}

// Normalize converts separators to forward slashes and cleans the path.
func (rp RelativePath) Normalize() RelativePath {
	s := strings.ReplaceAll(string(rp), "\\", "/")
	if s == "" {
		return ""
	}
	s = path.Clean(s)
	s = strings.TrimPrefix(s, "./")
	return RelativePath(s)
}

// IsValid reports whether rp is non-empty, relative, and stays inside the root.
func (rp RelativePath) IsValid() bool {
	s := string(rp)
	if s == "" || s == "." {
		return false
	}
	if strings.HasPrefix(s, "/") || filepath.IsAbs(s) {
		return false
	}
	for _, part := range strings.Split(s, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// Base returns the last element of the path.
func (rp RelativePath) Base() string {
	return path.Base(string(rp))
}

// Ext returns the file name extension, including the dot.
func (rp RelativePath) Ext() string {
	return path.Ext(string(rp))
}

// WithSuffix appends suffix to the path, e.g. "a.prefab" + ".meta".
func (rp RelativePath) WithSuffix(suffix string) RelativePath {
	return RelativePath(string(rp) + suffix)
}

// Components returns the path split on "/".
func (rp RelativePath) Components() []string {
	if rp == "" {
		return nil
	}
	return strings.Split(string(rp), "/")
}

// NewRepositoryRoot makes p absolute and cleans it.
func NewRepositoryRoot(p string) (RepositoryRoot, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return RepositoryRoot(abs), nil
}

// String returns the root as a string
func (r RepositoryRoot) String() string {
	return string(r)
}

// Join resolves rel against the root and refuses results that escape it.
func (r RepositoryRoot) Join(rel RelativePath) (string, error) {
	if !rel.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", rel)
	}

	result := filepath.Join(string(r), filepath.FromSlash(string(rel)))
	check, err := filepath.Rel(string(r), result)
	if err != nil {
		return "", fmt.Errorf("failed to validate path: %w", err)
	}
	if check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes repository: %s", rel)
	}
	return result, nil
}

// Rel converts an absolute or working-directory path inside the root into
// a RelativePath.
func (r RepositoryRoot) Rel(p string) (RelativePath, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	rel, err := filepath.Rel(string(r), abs)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	return New(filepath.ToSlash(rel))
}

// Resolve returns p unchanged when absolute, otherwise joined onto the root.
// Used for configured locations such as the scratch directory.
func (r RepositoryRoot) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(string(r), filepath.FromSlash(p))
}
