package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/catalog"
	"github.com/webgovernor/dirtools/internal/config"
	"github.com/webgovernor/dirtools/internal/db"
	"github.com/webgovernor/dirtools/internal/history"
	"github.com/webgovernor/dirtools/internal/logging"
	"github.com/webgovernor/dirtools/internal/mcpserver"
	"github.com/webgovernor/dirtools/internal/result"
	"github.com/webgovernor/dirtools/internal/tools"
	"github.com/webgovernor/dirtools/internal/tui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const usage = `Usage: dirtools [-C dir] [-read-only] [command]

Commands:
  (none)              interactive console
  serve               serve the tools over MCP on stdio
  call <tool> [json]  run one tool and print its outcome
  tools               print the tool catalog

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dirtools", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("C", "", "work directory, the root for relative paths (default: current directory)")
	readOnly := fs.Bool("read-only", false, "start the console in READ mode")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	command := fs.Arg(0)
	var rest []string
	if fs.NArg() > 1 {
		rest = fs.Args()[1:]
	}
	switch command {
	case "", "console", "serve", "call", "tools":
	default:
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", command)
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*dir)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// The console owns the terminal, so its log goes to a file.
	settings := logging.Settings{Profile: logging.ProfileRuntime, Level: cfg.LogLevel, App: "dirtools"}
	if command == "" || command == "console" {
		settings.File = cfg.LogFile
	}
	logger, closer := logging.New(settings)
	defer closer.Close()
	ctx = logger.WithContext(ctx)

	registry := tools.DefaultRegistry(cfg.ToolOptions())

	if command == "tools" {
		fmt.Fprint(stdout, catalog.Full(registry))
		return 0
	}

	mode := command
	if mode == "" {
		mode = "console"
	}
	hist, closeJournal := openJournal(cfg, mode, logger)
	defer closeJournal()
	if hist != nil {
		hist.Attach(registry)
	}

	switch mode {
	case "serve":
		srv, err := mcpserver.New(registry, version, logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("MCP server stopped")
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0

	case "call":
		return callTool(ctx, registry, rest, stdout, stderr)

	default:
		p := tea.NewProgram(
			tui.New(ctx, tui.Options{
				Registry: registry,
				History:  hist,
				WorkDir:  cfg.WorkDir,
				Backend:  cfg.Backend,
				Logger:   logger,
				ReadOnly: *readOnly,
			}),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		)
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}
}

// openJournal opens the invocation journal. A journal that cannot be opened
// is logged and skipped; the tools work without it.
func openJournal(cfg config.Config, mode string, logger zerolog.Logger) (*history.Service, func()) {
	if !cfg.Journal {
		return nil, func() {}
	}
	database, err := db.New(cfg.DBPath())
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.DBPath()).Msg("Journal unavailable")
		return nil, func() {}
	}
	hist, err := history.NewService(database, cfg.WorkDir, mode)
	if err != nil {
		logger.Warn().Err(err).Msg("Journal unavailable")
		database.Close()
		return nil, func() {}
	}
	logger.Debug().Str("session", hist.SessionID()).Msg("Journal session started")
	return hist, func() { database.Close() }
}

// callTool runs a single tool. The exit code is 1 when the outcome is an
// error message.
func callTool(ctx context.Context, registry *tools.Registry, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || len(args) > 2 {
		fmt.Fprintln(stderr, "usage: dirtools call <tool> [json]")
		return 2
	}
	input := json.RawMessage("{}")
	if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
		input = json.RawMessage(args[1])
	}

	out := registry.Execute(ctx, args[0], input)
	fmt.Fprintln(stdout, out)
	if result.IsError(out) {
		return 1
	}
	return 0
}
