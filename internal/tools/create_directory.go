package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/pathguard"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/result"
)

// CreateDirectoryTool creates a directory and any missing parents.
type CreateDirectoryTool struct {
	opts Options
}

// NewCreateDirectoryTool creates a new create_directory tool.
func NewCreateDirectoryTool(opts Options) *CreateDirectoryTool {
	return &CreateDirectoryTool{opts: opts.withDefaults()}
}

func (t *CreateDirectoryTool) Name() string { return "create_directory" }

func (t *CreateDirectoryTool) Description() string {
	return "Creates a new directory, including any necessary parent directories."
}

func (t *CreateDirectoryTool) Parameters() json.RawMessage {
	return ToolDef{
		Type: "object",
		Properties: map[string]Property{
			"dir_path": {
				Type:        "string",
				Description: "The path of the directory to create.",
			},
		},
		Required: []string{"dir_path"},
	}.raw()
}

func (t *CreateDirectoryTool) PositionalArgs() []string { return []string{"dir_path"} }

func (t *CreateDirectoryTool) RequiresPermission() bool { return true }

func (t *CreateDirectoryTool) Execute(ctx context.Context, input json.RawMessage) string {
	var params struct {
		DirPath string `json:"dir_path"`
	}
	if errOut := decodeInput(t.Name(), input, &params); errOut != "" {
		return errOut
	}
	if strings.TrimSpace(params.DirPath) == "" {
		return "Error: Missing required argument 'dir_path'."
	}
	return t.Create(ctx, params.DirPath)
}

// Create makes dirPath. Creating a directory that already exists is not an
// error.
func (t *CreateDirectoryTool) Create(ctx context.Context, dirPath string) (out string) {
	defer result.Recover(platform.Create, &out)
	log := zerolog.Ctx(ctx)

	if _, err := pathguard.Validate(dirPath); err != nil {
		log.Warn().Str("path", dirPath).Msg("Attempted to access parent directory in create_directory path")
		return fmt.Sprintf("Error: Invalid path '%s'. Cannot access parent directories.", dirPath)
	}

	expanded, err := pathguard.ExpandHome(strings.TrimSpace(dirPath))
	if err != nil {
		return fmt.Sprintf("Error creating directory: %s", err)
	}
	target := expanded
	if !filepath.IsAbs(target) {
		target = filepath.Join(t.opts.WorkDir, target)
	}
	target = filepath.Clean(target)
	if t.opts.Confine && !pathguard.Within(t.opts.WorkDir, target) {
		log.Warn().Str("path", dirPath).Msg("Rejected create_directory path outside workspace")
		return fmt.Sprintf("Error: Invalid path '%s'. Path is outside the workspace.", dirPath)
	}

	log.Info().Str("target", target).Msg("Attempting to create directory")

	if info, err := os.Stat(target); err == nil {
		if info.IsDir() {
			log.Warn().Str("target", target).Msg("Directory already exists")
			return fmt.Sprintf("Directory already exists: %s", dirPath)
		}
		log.Error().Err(result.ErrNotADirectory).Str("target", target).Msg("Refusing to create directory")
		return fmt.Sprintf("Error: Path exists but is not a directory: %s", dirPath)
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		// another process may have created it between Stat and MkdirAll
		if errors.Is(err, fs.ErrExist) {
			if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
				log.Info().Str("target", target).Msg("Directory created concurrently")
				return fmt.Sprintf("Successfully created directory: %s", dirPath)
			}
		}
		log.Error().Err(err).Str("target", target).Msg("Error creating directory")
		return fmt.Sprintf("Error creating directory: %s", err)
	}

	log.Info().Str("target", target).Msg("Successfully created directory")
	return fmt.Sprintf("Successfully created directory: %s", dirPath)
}
