package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/webgovernor/dirtools/internal/result"
)

// Tool defines the interface that all tools must implement.
type Tool interface {
	// Name returns the tool's unique identifier.
	Name() string

	// Description tells the calling agent when to use the tool.
	Description() string

	// Parameters returns the JSON Schema for the tool's input parameters.
	Parameters() json.RawMessage

	// RequiresPermission returns true if the tool changes the filesystem.
	RequiresPermission() bool

	// Execute runs the tool with the given JSON input. The returned string is
	// either the result or a message starting with "Error"; failures are never
	// reported any other way.
	Execute(ctx context.Context, input json.RawMessage) string
}

// Positional is implemented by tools whose arguments can be given in order
// on a command line.
type Positional interface {
	PositionalArgs() []string
}

// ToolDef is a convenience struct for building JSON Schema tool parameter definitions.
type ToolDef struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property defines a single parameter in a JSON Schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Minimum     *int   `json:"minimum,omitempty"`
	Maximum     *int   `json:"maximum,omitempty"`
}

func (d ToolDef) raw() json.RawMessage {
	data, _ := json.Marshal(d)
	return data
}

// Schema decodes a tool's parameter schema.
func Schema(t Tool) (ToolDef, error) {
	var def ToolDef
	if err := json.Unmarshal(t.Parameters(), &def); err != nil {
		return ToolDef{}, fmt.Errorf("decoding %s schema: %w", t.Name(), err)
	}
	return def, nil
}

// Call describes one finished tool execution.
type Call struct {
	Tool     string
	Input    json.RawMessage
	Output   string
	IsError  bool
	Started  time.Time
	Duration time.Duration
}

// Observer receives every call executed through the registry.
type Observer func(ctx context.Context, call Call)

// Registry holds all registered tools and provides lookup.
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]Tool
	order     []string // preserve insertion order
	observers []Observer
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Observe adds an observer notified after every Execute.
func (r *Registry) Observe(fn Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// All returns all registered tools in insertion order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Execute looks up and executes a tool by name. An unknown name is reported
// like any other failure, as an error string.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) string {
	started := time.Now()

	var out string
	if t, ok := r.Get(name); ok {
		out = t.Execute(ctx, input)
	} else {
		out = fmt.Sprintf("Error: unknown tool '%s'", name)
	}

	r.mu.RLock()
	observers := r.observers
	r.mu.RUnlock()

	call := Call{
		Tool:     name,
		Input:    input,
		Output:   out,
		IsError:  result.IsError(out),
		Started:  started,
		Duration: time.Since(started),
	}
	for _, fn := range observers {
		fn(ctx, call)
	}
	return out
}

// DefaultRegistry creates a registry with the directory tools pre-registered.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()

	// Read-only tools
	r.Register(NewLsTool(opts))
	r.Register(NewTreeTool(opts))

	// Write tools (require permission)
	r.Register(NewCreateDirectoryTool(opts))

	return r
}
