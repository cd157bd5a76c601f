package tools

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/fswalk"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/result"
)

// LsTool lists directory contents.
type LsTool struct {
	opts Options
}

// NewLsTool creates a new ls tool.
func NewLsTool(opts Options) *LsTool {
	return &LsTool{opts: opts.withDefaults()}
}

func (t *LsTool) Name() string { return "ls" }

func (t *LsTool) Description() string {
	return "Lists the contents of a specified directory (long format, including hidden files)."
}

func (t *LsTool) Parameters() json.RawMessage {
	return ToolDef{
		Type: "object",
		Properties: map[string]Property{
			"path": {
				Type:        "string",
				Description: "Optional path to a specific directory relative to the workspace root. If omitted, uses the current directory.",
			},
		},
	}.raw()
}

func (t *LsTool) PositionalArgs() []string { return []string{"path"} }

func (t *LsTool) RequiresPermission() bool { return false }

func (t *LsTool) Execute(ctx context.Context, input json.RawMessage) string {
	var params struct {
		Path string `json:"path"`
	}
	if errOut := decodeInput(t.Name(), input, &params); errOut != "" {
		return errOut
	}
	return t.List(ctx, params.Path)
}

// List lists path, which may be empty for the workspace root.
func (t *LsTool) List(ctx context.Context, path string) (out string) {
	defer result.Recover(platform.List, &out)
	log := zerolog.Ctx(ctx)

	abs, display, errOut := t.opts.resolve(ctx, t.Name(), path)
	if errOut != "" {
		return errOut
	}
	if errOut := preflight(abs, display); errOut != "" {
		log.Error().Str("path", display).Str("outcome", errOut).Msg("Directory listing pre-flight check failed")
		return errOut
	}

	if t.opts.Backend == BackendExec {
		return t.opts.runCommand(ctx, t.Name(), platform.List, abs, display, nil, t.opts.ListMaxLines)
	}

	listing, err := fswalk.List(ctx, abs, t.opts.walkOptions())
	if err != nil {
		log.Error().Err(err).Str("path", display).Msg("Directory listing failed")
		return result.Unexpected(platform.List, err)
	}
	log.Info().Str("path", display).Msg("Directory listing successful")
	return truncate(ctx, t.Name(), display, listing, t.opts.ListMaxLines)
}
