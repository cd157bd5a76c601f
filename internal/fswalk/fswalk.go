// Package fswalk renders directory listings and trees straight from the
// filesystem, so output does not depend on the host's ls, dir or tree.
package fswalk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls which entries are shown.
type Options struct {
	// Ignore holds doublestar patterns. A pattern matches either the entry's
	// slash-separated path relative to the listed root or its base name.
	Ignore []string
}

func (o Options) ignored(rel, name string) bool {
	for _, pattern := range o.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed ignore pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return nil
}

const timeLayout = "2006-01-02 15:04"

// List returns one row per entry of dir, hidden entries included.
func List(ctx context.Context, dir string, opts Options) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading directory: %w", err)
	}

	type row struct {
		mode, size, mtime, name string
	}
	rows := make([]row, 0, len(entries))
	sizeWidth := 0

	for _, entry := range entries {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		name := entry.Name()
		if opts.ignored(name, name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// entry vanished between ReadDir and Info
			continue
		}

		display := name
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			if target, err := os.Readlink(filepath.Join(dir, name)); err == nil {
				display = name + " -> " + target
			}
		case info.IsDir():
			display = name + "/"
		}

		r := row{
			mode:  info.Mode().String(),
			size:  strconv.FormatInt(info.Size(), 10),
			mtime: info.ModTime().Format(timeLayout),
			name:  display,
		}
		sizeWidth = max(sizeWidth, len(r.size))
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		return "(empty directory)", nil
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %*s %s %s", r.mode, sizeWidth, r.size, r.mtime, r.name))
	}
	return strings.Join(lines, "\n"), nil
}
