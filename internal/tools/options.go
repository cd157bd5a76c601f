package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/fswalk"
	"github.com/webgovernor/dirtools/internal/output"
	"github.com/webgovernor/dirtools/internal/pathguard"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/process"
	"github.com/webgovernor/dirtools/internal/result"
)

// Backend selects how ls and tree produce their output.
type Backend string

const (
	// BackendNative reads the filesystem directly.
	BackendNative Backend = "native"
	// BackendExec shells out to ls/dir/tree.
	BackendExec Backend = "exec"
)

// Options is shared by all directory tools.
type Options struct {
	// WorkDir is the workspace root relative paths resolve against.
	WorkDir string
	Backend Backend
	Timeout time.Duration

	ListMaxLines int
	TreeMaxLines int

	// TreeDepth is used when a tree call gives no depth.
	TreeDepth int

	// Ignore holds doublestar patterns hidden by the native backend.
	Ignore []string

	// Confine rejects absolute paths outside WorkDir.
	Confine bool

	// Runner and Platform are replaced in tests.
	Runner   process.Runner
	Platform func() platform.Platform
}

func (o Options) withDefaults() Options {
	if o.WorkDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			o.WorkDir = cwd
		}
	}
	if o.Backend == "" {
		o.Backend = BackendNative
	}
	if o.Timeout <= 0 {
		o.Timeout = process.DefaultTimeout
	}
	if o.ListMaxLines <= 0 {
		o.ListMaxLines = output.ListMaxLines
	}
	if o.TreeMaxLines <= 0 {
		o.TreeMaxLines = output.TreeMaxLines
	}
	if o.TreeDepth <= 0 {
		o.TreeDepth = platform.DefaultTreeDepth
	}
	if o.Runner == nil {
		o.Runner = process.NewExecRunner()
	}
	if o.Platform == nil {
		o.Platform = platform.Current
	}
	return o
}

// decodeInput unmarshals input into params. Empty input is an empty object.
func decodeInput(tool string, input json.RawMessage, params any) string {
	if len(strings.TrimSpace(string(input))) == 0 {
		return ""
	}
	if err := json.Unmarshal(input, params); err != nil {
		return fmt.Sprintf("Error: invalid arguments for %s: %s", tool, err)
	}
	return ""
}

// resolve validates a user path and returns the absolute target together
// with the cleaned form used in messages. A non-empty string return is the
// error outcome.
func (o Options) resolve(ctx context.Context, tool, raw string) (abs, display, errOut string) {
	log := zerolog.Ctx(ctx)

	abs, display, err := pathguard.Resolve(o.WorkDir, raw)
	if err != nil {
		log.Warn().Str("tool", tool).Str("path", raw).Msg("Rejected parent directory path")
		return "", "", fmt.Sprintf("Error: Invalid path '%s'. Cannot access parent directories.", raw)
	}
	if o.Confine && !pathguard.Within(o.WorkDir, abs) {
		log.Warn().Str("tool", tool).Str("path", raw).Str("workdir", o.WorkDir).Msg("Rejected path outside workspace")
		return "", "", fmt.Sprintf("Error: Invalid path '%s'. Path is outside the workspace.", raw)
	}
	return abs, display, ""
}

// preflight checks that abs is an existing directory.
func preflight(abs, display string) string {
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return result.DirectoryNotFound(display)
		}
		return fmt.Sprintf("Error: Cannot access '%s': %s", display, err)
	}
	if !info.IsDir() {
		return result.NotADirectory(display)
	}
	return ""
}

func (o Options) walkOptions() fswalk.Options {
	return fswalk.Options{Ignore: o.Ignore}
}

// runCommand is the exec backend shared by ls and tree.
func (o Options) runCommand(ctx context.Context, tool string, op platform.Operation, target, display string, depth *int, maxLines int) string {
	host := o.Platform()
	spec := platform.Select(op, target, platform.Options{Depth: depth, Platform: &host})
	res := o.Runner.Run(ctx, spec, o.Timeout)
	if result.Classify(res) == nil {
		return truncate(ctx, tool, display, res.Stdout, maxLines)
	}
	return result.Format(result.Input{
		Op:       op,
		Command:  spec.Executable,
		Path:     display,
		Platform: host,
		Result:   res,
		MaxLines: maxLines,
	})
}

// truncate applies the line budget and logs when output was cut.
func truncate(ctx context.Context, tool, display, text string, maxLines int) string {
	out, cut := output.Truncated(text, maxLines)
	if cut {
		zerolog.Ctx(ctx).Warn().
			Str("tool", tool).
			Str("path", display).
			Int("max_lines", maxLines).
			Msg("Output exceeded line budget, truncating")
	}
	return out
}
