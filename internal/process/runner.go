package process

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/platform"
)

// DefaultTimeout bounds every listing and tree command.
const DefaultTimeout = 15 * time.Second

// ExecutionResult is the captured outcome of one external command.
type ExecutionResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	NotFound bool

	// Err is set when the process could not be started for a reason other
	// than a missing executable, or when the caller's context was cancelled.
	Err error
}

// Runner executes a command spec. Implementations never return a non-zero
// exit status as an error; it is reported through ExitCode.
type Runner interface {
	Run(ctx context.Context, spec platform.CommandSpec, timeout time.Duration) ExecutionResult
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Platform decides the shell used for shell-wrapped specs.
	Platform platform.Platform
}

// NewExecRunner returns a runner for the host platform.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Platform: platform.Current()}
}

func (r *ExecRunner) Run(ctx context.Context, spec platform.CommandSpec, timeout time.Duration) ExecutionResult {
	log := zerolog.Ctx(ctx)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name, args := r.argv(spec)
	log.Info().Str("command", spec.String()).Bool("shell", spec.UseShellWrapper).Msg("Executing command")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		log.Error().Str("command", spec.String()).Dur("timeout", timeout).Msg("Command timed out")
		return ExecutionResult{ExitCode: -1, TimedOut: true}
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		log.Warn().Str("command", spec.String()).Msg("Command cancelled")
		return ExecutionResult{ExitCode: -1, Err: ctx.Err()}
	}

	res := ExecutionResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		res.ExitCode = -1
		res.NotFound = true
	default:
		res.ExitCode = -1
		res.Err = err
	}

	log.Info().
		Str("command", spec.String()).
		Int("exit_code", res.ExitCode).
		Bool("not_found", res.NotFound).
		Str("outcome", res.Outcome()).
		Msg("Command finished")

	return res
}

// argv turns a spec into the program name and arguments to launch.
func (r *ExecRunner) argv(spec platform.CommandSpec) (string, []string) {
	if !spec.UseShellWrapper {
		return spec.Executable, spec.Arguments
	}
	if r.Platform == platform.Windows {
		return "cmd", append([]string{"/C", spec.Executable}, spec.Arguments...)
	}
	quoted := make([]string, 0, len(spec.Arguments)+1)
	quoted = append(quoted, shellQuote(spec.Executable))
	for _, a := range spec.Arguments {
		quoted = append(quoted, shellQuote(a))
	}
	return "sh", []string{"-c", strings.Join(quoted, " ")}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Outcome names the result classification for logs.
func (r ExecutionResult) Outcome() string {
	switch {
	case r.NotFound:
		return "not_found"
	case r.TimedOut:
		return "timed_out"
	case errors.Is(r.Err, context.Canceled):
		return "cancelled"
	case r.Err != nil:
		return "launch_failed"
	case r.ExitCode == 0:
		return "success"
	default:
		return "non_zero_exit"
	}
}
