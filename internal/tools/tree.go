package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/fswalk"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/result"
)

// TreeTool displays a directory hierarchy.
type TreeTool struct {
	opts Options
}

// NewTreeTool creates a new tree tool.
func NewTreeTool(opts Options) *TreeTool {
	return &TreeTool{opts: opts.withDefaults()}
}

func (t *TreeTool) Name() string { return "tree" }

func (t *TreeTool) Description() string {
	return fmt.Sprintf("Displays the directory structure as a tree. Shows directories and files. "+
		"Use this to understand the hierarchy and layout of the current working directory or a subdirectory. "+
		"Defaults to a depth of %d. Use the 'depth' argument to specify a different level. "+
		"Optionally specify a 'path' to view a subdirectory instead of the current directory.", platform.DefaultTreeDepth)
}

func (t *TreeTool) Parameters() json.RawMessage {
	minDepth, maxDepth := platform.MinTreeDepth, platform.MaxTreeDepth
	return ToolDef{
		Type: "object",
		Properties: map[string]Property{
			"path": {
				Type:        "string",
				Description: "Optional path to a specific directory relative to the workspace root. If omitted, uses the current directory.",
			},
			"depth": {
				Type:        "integer",
				Description: fmt.Sprintf("Optional maximum display depth of the directory tree (Default: %d, Max: %d).", platform.DefaultTreeDepth, platform.MaxTreeDepth),
				Default:     platform.DefaultTreeDepth,
				Minimum:     &minDepth,
				Maximum:     &maxDepth,
			},
		},
	}.raw()
}

func (t *TreeTool) PositionalArgs() []string { return []string{"path", "depth"} }

func (t *TreeTool) RequiresPermission() bool { return false }

func (t *TreeTool) Execute(ctx context.Context, input json.RawMessage) string {
	var params struct {
		Path  string `json:"path"`
		Depth *int   `json:"depth"`
	}
	if errOut := decodeInput(t.Name(), input, &params); errOut != "" {
		return errOut
	}
	return t.Show(ctx, params.Path, params.Depth)
}

// Show renders the tree for path. A nil depth selects the default.
func (t *TreeTool) Show(ctx context.Context, path string, depth *int) (out string) {
	defer result.Recover(platform.Tree, &out)
	log := zerolog.Ctx(ctx)

	abs, display, errOut := t.opts.resolve(ctx, t.Name(), path)
	if errOut != "" {
		return errOut
	}
	if errOut := preflight(abs, display); errOut != "" {
		log.Error().Str("path", display).Str("outcome", errOut).Msg("Tree pre-flight check failed")
		return errOut
	}

	if depth == nil {
		depth = &t.opts.TreeDepth
	}
	limit := platform.TreeDepth(depth)
	if t.opts.Backend == BackendExec {
		if t.opts.Platform() == platform.Windows {
			log.Info().Int("depth", limit).Msg("Windows tree does not support a depth limit, showing full tree")
		}
		return t.opts.runCommand(ctx, t.Name(), platform.Tree, abs, display, &limit, t.opts.TreeMaxLines)
	}

	tree, err := fswalk.Tree(ctx, abs, display, limit, t.opts.walkOptions())
	if err != nil {
		log.Error().Err(err).Str("path", display).Int("depth", limit).Msg("Tree traversal failed")
		return result.Unexpected(platform.Tree, err)
	}
	log.Info().Str("path", display).Int("depth", limit).Msg("Tree successful")
	return truncate(ctx, t.Name(), display, tree, t.opts.TreeMaxLines)
}
