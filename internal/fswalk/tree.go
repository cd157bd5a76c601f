package fswalk

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	blank      = "    "
)

type treeWalker struct {
	ctx   context.Context
	opts  Options
	depth int
	sb    strings.Builder
	dirs  int
	files int
}

// Tree renders dir as an indented tree, descending at most depth levels.
// Depth 1 shows only the immediate children. The first line is label and
// the last line summarizes the directory and file counts.
func Tree(ctx context.Context, dir, label string, depth int, opts Options) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading directory: %w", err)
	}

	w := &treeWalker{ctx: ctx, opts: opts, depth: depth}
	w.sb.WriteString(label + "\n")
	if err := w.walk(entries, dir, "", "", 1); err != nil {
		return "", err
	}

	fmt.Fprintf(&w.sb, "\n%d %s, %d %s",
		w.dirs, plural(w.dirs, "directory", "directories"),
		w.files, plural(w.files, "file", "files"))
	return w.sb.String(), nil
}

func (w *treeWalker) walk(entries []os.DirEntry, dir, rel, prefix string, level int) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}

	visible := make([]os.DirEntry, 0, len(entries))
	for _, e := range entries {
		if !w.opts.ignored(path.Join(rel, e.Name()), e.Name()) {
			visible = append(visible, e)
		}
	}

	for i, entry := range visible {
		connector, childPrefix := branch, prefix+pipe
		if i == len(visible)-1 {
			connector, childPrefix = lastBranch, prefix+blank
		}

		name := entry.Name()
		full := filepath.Join(dir, name)

		// DirEntry types come from lstat, so symlinked directories count as files.
		if !entry.IsDir() {
			w.files++
			line := name
			if entry.Type()&os.ModeSymlink != 0 {
				if target, err := os.Readlink(full); err == nil {
					line += " -> " + target
				}
			}
			w.sb.WriteString(prefix + connector + line + "\n")
			continue
		}

		w.dirs++
		if level >= w.depth {
			w.sb.WriteString(prefix + connector + name + "/\n")
			continue
		}
		children, err := os.ReadDir(full)
		if err != nil {
			w.sb.WriteString(prefix + connector + name + "/ [error opening dir]\n")
			continue
		}
		w.sb.WriteString(prefix + connector + name + "/\n")
		if err := w.walk(children, full, path.Join(rel, name), childPrefix, level+1); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
