package result

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"

	"github.com/webgovernor/dirtools/internal/process"
)

var (
	ErrNotADirectory   = errors.New("path exists but is not a directory")
	ErrCommandNotFound = errors.New("command not found")
	ErrTimeout         = errors.New("command timed out")
	ErrNonZeroExit     = errors.New("command exited with non-zero status")
	ErrPathNotFound    = errors.New("directory not found")
	ErrUnexpected      = errors.New("unexpected failure")
)

var (
	commandNotFoundMarkers = []string{
		"command not found",
		"is not recognized as an internal or external command",
	}
	pathNotFoundMarkers = []string{
		"no such file or directory",
		"cannot find the path",
	}
)

// Classify maps an execution result onto the error taxonomy. It returns nil
// for a successful run. ErrPathNotFound is wrapped together with
// ErrNonZeroExit since it is a sub-case of a failed run.
func Classify(res process.ExecutionResult) error {
	switch {
	case res.NotFound:
		return ErrCommandNotFound
	case res.TimedOut:
		return ErrTimeout
	case res.Err != nil:
		return errors.Join(ErrUnexpected, res.Err)
	case res.ExitCode == 0:
		return nil
	}

	stderr := fold(res.Stderr)
	if res.ExitCode == 127 || containsAny(stderr, commandNotFoundMarkers) {
		return ErrCommandNotFound
	}
	if containsAny(stderr, pathNotFoundMarkers) {
		return errors.Join(ErrNonZeroExit, ErrPathNotFound)
	}
	return ErrNonZeroExit
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
