package platform

import (
	"runtime"
	"strconv"
	"strings"
)

// Platform is the host OS family that decides command syntax.
type Platform int

const (
	Unix Platform = iota
	Windows
)

func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "unix"
}

// Current returns the platform of the running process.
func Current() Platform {
	return For(runtime.GOOS)
}

// For maps a GOOS value onto a Platform.
func For(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Unix
}

// Operation is a logical directory operation.
type Operation int

const (
	List Operation = iota
	Tree
	Create
)

func (o Operation) String() string {
	switch o {
	case List:
		return "list"
	case Tree:
		return "tree"
	case Create:
		return "create"
	default:
		return "unknown"
	}
}

const (
	DefaultTreeDepth = 3
	MinTreeDepth     = 1
	MaxTreeDepth     = 10
)

// CommandSpec describes one external command invocation.
type CommandSpec struct {
	Executable      string
	Arguments       []string
	UseShellWrapper bool
}

// String renders the command line for logs.
func (c CommandSpec) String() string {
	parts := append([]string{c.Executable}, c.Arguments...)
	return strings.Join(parts, " ")
}

// Options carries per-operation parameters.
type Options struct {
	// Depth is the requested tree depth; nil selects DefaultTreeDepth.
	Depth *int
	// Platform overrides the host platform when non-nil.
	Platform *Platform
}

// TreeDepth applies the default and clamps to [MinTreeDepth, MaxTreeDepth].
func TreeDepth(requested *int) int {
	if requested == nil {
		return DefaultTreeDepth
	}
	return max(MinTreeDepth, min(*requested, MaxTreeDepth))
}

// Select returns the command for op on the target path. Create has no
// external command and yields the zero CommandSpec.
func Select(op Operation, target string, opts Options) CommandSpec {
	host := Current()
	if opts.Platform != nil {
		host = *opts.Platform
	}

	switch op {
	case List:
		if host == Windows {
			return CommandSpec{Executable: "dir", Arguments: []string{"/a", target}, UseShellWrapper: true}
		}
		return CommandSpec{Executable: "ls", Arguments: []string{"-lA", target}}
	case Tree:
		if host == Windows {
			// tree.com has no depth flag
			return CommandSpec{Executable: "tree", Arguments: []string{target}, UseShellWrapper: true}
		}
		depth := strconv.Itoa(TreeDepth(opts.Depth))
		return CommandSpec{Executable: "tree", Arguments: []string{"-L", depth, target}}
	default:
		return CommandSpec{}
	}
}
