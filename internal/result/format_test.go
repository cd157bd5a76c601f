package result

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/webgovernor/dirtools/internal/output"
	"github.com/webgovernor/dirtools/internal/platform"
	"github.com/webgovernor/dirtools/internal/process"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{
			name: "not found",
			in:   Input{Op: platform.List, Command: "ls", Path: ".", Result: process.ExecutionResult{NotFound: true}},
			want: "Error: 'ls' command not found. Please ensure it is installed and in the system's PATH.",
		},
		{
			name: "windows tree not found",
			in:   Input{Op: platform.Tree, Command: "tree", Path: ".", Platform: platform.Windows, Result: process.ExecutionResult{NotFound: true}},
			want: "Error: 'tree' command not found. This is a built-in Windows command, so this may indicate a system issue.",
		},
		{
			name: "listing timeout",
			in:   Input{Op: platform.List, Command: "ls", Path: "big", Result: process.ExecutionResult{TimedOut: true}},
			want: "Error: Directory listing timed out for path 'big'.",
		},
		{
			name: "tree timeout adds hint",
			in:   Input{Op: platform.Tree, Command: "tree", Path: "big", Result: process.ExecutionResult{TimedOut: true}},
			want: "Error: Tree command timed out for path 'big'. The directory might be too large or complex.",
		},
		{
			name: "success trims",
			in:   Input{Op: platform.List, Command: "ls", Path: ".", MaxLines: output.ListMaxLines, Result: process.ExecutionResult{Stdout: "\na\nb\n"}},
			want: "a\nb",
		},
		{
			name: "exit 127",
			in:   Input{Op: platform.Tree, Command: "tree", Path: ".", Result: process.ExecutionResult{ExitCode: 127}},
			want: "Error: 'tree' command not found. Please ensure it is installed and in the system's PATH.",
		},
		{
			name: "stderr command not found",
			in:   Input{Op: platform.Tree, Command: "tree", Path: ".", Result: process.ExecutionResult{ExitCode: 1, Stderr: "sh: tree: Command Not Found"}},
			want: "Error: 'tree' command not found. Please ensure it is installed and in the system's PATH.",
		},
		{
			name: "unix missing path",
			in:   Input{Op: platform.List, Command: "ls", Path: "nope", Result: process.ExecutionResult{ExitCode: 2, Stderr: "ls: cannot access 'nope': No such file or directory\n"}},
			want: "Error: Directory not found: 'nope'",
		},
		{
			name: "windows missing path",
			in:   Input{Op: platform.List, Command: "dir", Path: "nope", Result: process.ExecutionResult{ExitCode: 1, Stderr: "The system Cannot Find The Path specified."}},
			want: "Error: Directory not found: 'nope'",
		},
		{
			name: "generic failure",
			in:   Input{Op: platform.List, Command: "ls", Path: "x", Result: process.ExecutionResult{ExitCode: 2, Stderr: "  permission denied \n"}},
			want: "Error executing directory listing command (Code: 2): permission denied",
		},
		{
			name: "generic failure without stderr",
			in:   Input{Op: platform.Tree, Command: "tree", Path: "x", Result: process.ExecutionResult{ExitCode: 3}},
			want: "Error executing tree command (Code: 3): (No stderr)",
		},
		{
			name: "launch failure",
			in:   Input{Op: platform.List, Command: "ls", Path: "x", Result: process.ExecutionResult{ExitCode: -1, Err: errors.New("fork/exec: resource busy")}},
			want: "Error: Directory listing failed: fork/exec: resource busy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestFormatTruncatesSuccess(t *testing.T) {
	lines := make([]string, 150)
	for i := range lines {
		lines[i] = fmt.Sprintf("entry-%03d", i)
	}
	in := Input{
		Op:       platform.List,
		Command:  "ls",
		Path:     ".",
		MaxLines: output.ListMaxLines,
		Result:   process.ExecutionResult{Stdout: strings.Join(lines, "\n") + "\n"},
	}

	got := strings.Split(Format(in), "\n")
	if len(got) != 101 {
		t.Fatalf("got %d lines, want 101", len(got))
	}
	if got[100] != output.TruncationMarker {
		t.Errorf("last line = %q", got[100])
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		res  process.ExecutionResult
		want error
	}{
		{"success", process.ExecutionResult{}, nil},
		{"missing binary", process.ExecutionResult{NotFound: true}, ErrCommandNotFound},
		{"timeout", process.ExecutionResult{TimedOut: true}, ErrTimeout},
		{"127", process.ExecutionResult{ExitCode: 127}, ErrCommandNotFound},
		{"cmd.exe unknown command", process.ExecutionResult{ExitCode: 9009, Stderr: "'tree' is not recognized as an internal or external command"}, ErrCommandNotFound},
		{"missing path", process.ExecutionResult{ExitCode: 2, Stderr: "No such file or directory"}, ErrPathNotFound},
		{"other", process.ExecutionResult{ExitCode: 1}, ErrNonZeroExit},
		{"launch", process.ExecutionResult{Err: errors.New("boom")}, ErrUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.res)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("Classify = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}

	if err := Classify(process.ExecutionResult{ExitCode: 2, Stderr: "no such file or directory"}); !errors.Is(err, ErrNonZeroExit) {
		t.Errorf("path-not-found should also be a non-zero exit, got %v", err)
	}
}

func TestRecover(t *testing.T) {
	run := func() (out string) {
		defer Recover(platform.Tree, &out)
		panic("walker exploded")
	}
	if got := run(); got != "Error: Tree command failed: walker exploded" {
		t.Errorf("Recover produced %q", got)
	}
}

func TestIsError(t *testing.T) {
	if !IsError("Error: Directory not found: 'x'") || !IsError("Error executing tree command (Code: 1): x") {
		t.Error("error outcomes not detected")
	}
	if IsError("Directory already exists: x") {
		t.Error("success outcome detected as error")
	}
}
