package result

import (
	"errors"
	"fmt"
	"strings"

	"github.com/webgovernor/dirtools/internal/output"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/process"
)

// Input is everything the formatter needs to describe one command run.
type Input struct {
	Op       platform.Operation
	Command  string
	Path     string
	Platform platform.Platform
	Result   process.ExecutionResult
	MaxLines int
}

// Title is the capitalized operation label used in timeout and unexpected
// failure messages.
func Title(op platform.Operation) string {
	switch op {
	case platform.List:
		return "Directory listing"
	case platform.Tree:
		return "Tree command"
	case platform.Create:
		return "Directory creation"
	default:
		return "Operation"
	}
}

func noun(op platform.Operation) string {
	switch op {
	case platform.List:
		return "directory listing"
	case platform.Tree:
		return "tree"
	case platform.Create:
		return "create directory"
	default:
		return op.String()
	}
}

// Format converts a command result into the single string returned to the
// caller. Successful stdout is truncated to in.MaxLines.
func Format(in Input) string {
	err := Classify(in.Result)
	switch {
	case err == nil:
		return output.Truncate(in.Result.Stdout, in.MaxLines)
	case errors.Is(err, ErrCommandNotFound):
		return CommandNotFound(in.Op, in.Command, in.Platform)
	case errors.Is(err, ErrTimeout):
		return Timeout(in.Op, in.Path)
	case errors.Is(err, ErrUnexpected):
		return Unexpected(in.Op, in.Result.Err)
	case errors.Is(err, ErrPathNotFound):
		return DirectoryNotFound(in.Path)
	default:
		detail := strings.TrimSpace(in.Result.Stderr)
		if detail == "" {
			detail = "(No stderr)"
		}
		return fmt.Sprintf("Error executing %s command (Code: %d): %s", noun(in.Op), in.Result.ExitCode, detail)
	}
}

// CommandNotFound reports a missing executable.
func CommandNotFound(op platform.Operation, command string, host platform.Platform) string {
	if op == platform.Tree && host == platform.Windows {
		return fmt.Sprintf("Error: '%s' command not found. This is a built-in Windows command, so this may indicate a system issue.", command)
	}
	return fmt.Sprintf("Error: '%s' command not found. Please ensure it is installed and in the system's PATH.", command)
}

// Timeout reports a command that exceeded its time budget.
func Timeout(op platform.Operation, path string) string {
	msg := fmt.Sprintf("Error: %s timed out for path '%s'.", Title(op), path)
	if op == platform.Tree {
		msg += " The directory might be too large or complex."
	}
	return msg
}

// DirectoryNotFound reports a missing target directory.
func DirectoryNotFound(path string) string {
	return fmt.Sprintf("Error: Directory not found: '%s'", path)
}

// NotADirectory reports a target that exists but is not a directory.
func NotADirectory(path string) string {
	return fmt.Sprintf("Error: Not a directory: '%s'", path)
}

// Unexpected reports any failure outside the known classifications.
func Unexpected(op platform.Operation, err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return fmt.Sprintf("Error: %s failed: %s", Title(op), msg)
}

// Recover converts a panic into an Unexpected outcome stored in *out. It
// must be deferred directly.
func Recover(op platform.Operation, out *string) {
	if r := recover(); r != nil {
		*out = Unexpected(op, fmt.Errorf("%v", r))
	}
}

// IsError reports whether a tool outcome is an error message.
func IsError(outcome string) bool {
	return strings.HasPrefix(outcome, "Error")
}
