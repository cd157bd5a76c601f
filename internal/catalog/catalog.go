// Package catalog renders the markdown documentation of the tool set.
package catalog

import (
	"embed"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/webgovernor/dirtools/internal/tools"
)

//go:embed docs/*.md
var docsFS embed.FS

func doc(name string) string {
	data, err := docsFS.ReadFile("docs/" + name + ".md")
	if err != nil {
		// This should never happen since the docs are embedded at compile time.
		panic("catalog: embedded " + name + ".md not found: " + err.Error())
	}
	return string(data)
}

// Intro returns the general introduction.
func Intro() string { return doc("intro") }

// ConsoleHelp returns the console usage page.
func ConsoleHelp() string { return doc("console") }

// Tools renders one section per registered tool with its parameters.
func Tools(registry *tools.Registry) string {
	var sb strings.Builder
	sb.WriteString("# Tools\n\n")
	for _, t := range registry.All() {
		sb.WriteString(fmt.Sprintf("## %s\n\n", t.Name()))
		sb.WriteString(t.Description() + "\n\n")
		if t.RequiresPermission() {
			sb.WriteString("*Changes the filesystem; asks for approval in the console.*\n\n")
		}

		def, err := tools.Schema(t)
		if err != nil || len(def.Properties) == 0 {
			continue
		}
		required := make(map[string]bool, len(def.Required))
		for _, r := range def.Required {
			required[r] = true
		}

		sb.WriteString("| Parameter | Type | Required | Description |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, name := range paramOrder(t, def) {
			p := def.Properties[name]
			req := "no"
			if required[name] {
				req = "yes"
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n", name, p.Type, req, p.Description))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// paramOrder lists positional parameters first, then the rest by name.
func paramOrder(t tools.Tool, def tools.ToolDef) []string {
	var names []string
	seen := make(map[string]bool)
	if p, ok := t.(tools.Positional); ok {
		for _, name := range p.PositionalArgs() {
			if _, ok := def.Properties[name]; ok && !seen[name] {
				names = append(names, name)
				seen[name] = true
			}
		}
	}
	var rest []string
	for name := range def.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Environment describes where the tools run.
func Environment(workDir, backend string, readOnly bool) string {
	mode := "WRITE"
	if readOnly {
		mode = "READ"
	}
	var sb strings.Builder
	sb.WriteString("# Environment\n\n")
	sb.WriteString(fmt.Sprintf("- Workspace root: %s\n", workDir))
	sb.WriteString(fmt.Sprintf("- Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH))
	sb.WriteString(fmt.Sprintf("- Backend: %s\n", backend))
	sb.WriteString(fmt.Sprintf("- Mode: %s\n", mode))
	sb.WriteString(fmt.Sprintf("- Date: %s\n", time.Now().Format("Mon Jan 2 2006")))
	return sb.String()
}

// Full assembles the introduction and the tool catalog. It is served as the
// MCP server instructions and printed by the tools command.
func Full(registry *tools.Registry) string {
	return Intro() + "\n" + Tools(registry)
}
