// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/webgovernor/dirtools/internal/catalog"
	"github.com/webgovernor/dirtools/internal/result"
	"github.com/webgovernor/dirtools/internal/tools"
)

// Server serves a registry to one MCP client.
type Server struct {
	registry *tools.Registry
	logger   zerolog.Logger
	mcp      *mcp.Server
}

// New registers every tool of registry on a new MCP server.
func New(registry *tools.Registry, version string, logger zerolog.Logger) (*Server, error) {
	s := &Server{
		registry: registry,
		logger:   logger,
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: "dirtools", Version: version},
			&mcp.ServerOptions{Instructions: catalog.Full(registry)},
		),
	}
	for _, t := range registry.All() {
		def, err := s.definition(t)
		if err != nil {
			return nil, err
		}
		s.mcp.AddTool(def, s.handler(t.Name()))
	}
	return s, nil
}

func (s *Server) definition(t tools.Tool) (*mcp.Tool, error) {
	var schema map[string]any
	if err := json.Unmarshal(t.Parameters(), &schema); err != nil {
		return nil, fmt.Errorf("decoding %s schema: %w", t.Name(), err)
	}
	return &mcp.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: schema,
		Annotations: &mcp.ToolAnnotations{
			Title:          t.Name(),
			ReadOnlyHint:   !t.RequiresPermission(),
			IdempotentHint: true,
		},
	}, nil
}

// handler forwards the raw arguments so decoding errors come from the tool
// itself, in the same wording every other caller sees.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = s.logger.With().Str("transport", "mcp").Logger().WithContext(ctx)

		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		out := s.registry.Execute(ctx, name, args)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
			IsError: result.IsError(out),
		}, nil
	}
}

// Run serves over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info().Int("tools", len(s.registry.All())).Msg("Serving MCP over stdio")
	return s.RunTransport(ctx, &mcp.StdioTransport{})
}

// RunTransport serves over t.
func (s *Server) RunTransport(ctx context.Context, t mcp.Transport) error {
	if err := s.mcp.Run(ctx, t); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// Connect starts a session on t without blocking.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}
