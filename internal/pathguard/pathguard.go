// Package pathguard validates user-supplied paths before any tool touches the
// filesystem. Validation is purely lexical: nothing is stat'ed and symlinks are
// not resolved.
package pathguard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrParentEscape is returned when a path contains a ".." segment.
var ErrParentEscape = errors.New("path contains a parent directory segment")

// Validate rejects any path with a ".." segment and returns the cleaned form.
// An empty path means the current directory.
func Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ".", nil
	}
	for _, segment := range splitSegments(trimmed) {
		if segment == ".." {
			return "", fmt.Errorf("%w: %s", ErrParentEscape, raw)
		}
	}
	return filepath.Clean(trimmed), nil
}

// splitSegments splits on "/" and on the platform separator, so a Windows
// host catches "a\..\b" as well as "a/../b".
func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// Resolve validates raw and joins it onto root unless it is already
// absolute. It also returns the cleaned form of raw for messages.
func Resolve(root, raw string) (abs, clean string, err error) {
	clean, err = Validate(raw)
	if err != nil {
		return "", "", err
	}
	if filepath.IsAbs(clean) {
		return clean, clean, nil
	}
	return filepath.Join(root, clean), clean, nil
}

// Within reports whether the absolute path target lies inside root.
func Within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
