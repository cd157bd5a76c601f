package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/webgovernor/dirtools/internal/tools"
)

// Builtin console commands.
const (
	cmdHelp    = "help"
	cmdTools   = "tools"
	cmdHistory = "history"
	cmdClear   = "clear"
	cmdReset   = "reset"
	cmdQuit    = "quit"
)

var builtins = map[string]bool{
	cmdHelp: true, cmdTools: true, cmdHistory: true,
	cmdClear: true, cmdReset: true, cmdQuit: true, "exit": true,
}

// Command is one parsed console line: either a builtin or a tool call.
type Command struct {
	Builtin string
	// Arg is the rest of a builtin line, as in "history clear".
	Arg   string
	Tool  tools.Tool
	Input json.RawMessage
}

// ParseCommand parses "tool arg... name=value..." or "tool {json}".
func ParseCommand(line string, registry *tools.Registry) (Command, error) {
	line = strings.TrimSpace(line)
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	if builtins[name] {
		if name == "exit" {
			name = cmdQuit
		}
		return Command{Builtin: name, Arg: rest}, nil
	}

	tool, ok := registry.Get(name)
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q, type help for usage", name)
	}
	if strings.HasPrefix(rest, "{") {
		if !json.Valid([]byte(rest)) {
			return Command{}, fmt.Errorf("invalid JSON arguments for %s", name)
		}
		return Command{Tool: tool, Input: json.RawMessage(rest)}, nil
	}

	words, err := shlex.Split(rest)
	if err != nil {
		return Command{}, fmt.Errorf("parsing arguments: %w", err)
	}
	input, err := buildInput(tool, words)
	if err != nil {
		return Command{}, err
	}
	return Command{Tool: tool, Input: input}, nil
}

// buildInput maps positional and name=value words onto the tool's schema.
func buildInput(tool tools.Tool, words []string) (json.RawMessage, error) {
	def, err := tools.Schema(tool)
	if err != nil {
		return nil, err
	}
	var positional []string
	if p, ok := tool.(tools.Positional); ok {
		positional = p.PositionalArgs()
	}

	args := make(map[string]any)
	next := 0
	for _, w := range words {
		key, val, named := strings.Cut(w, "=")
		if _, known := def.Properties[key]; !named || !known {
			if next >= len(positional) {
				return nil, fmt.Errorf("too many arguments for %s", tool.Name())
			}
			key, val = positional[next], w
			next++
		}
		v, err := convert(key, val, def.Properties[key])
		if err != nil {
			return nil, err
		}
		args[key] = v
	}

	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encoding arguments: %w", err)
	}
	return data, nil
}

func convert(name, raw string, prop tools.Property) (any, error) {
	switch prop.Type {
	case "integer":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q must be an integer, got %q", name, raw)
		}
		return n, nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q must be true or false, got %q", name, raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}
