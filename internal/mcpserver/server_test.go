package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/webgovernor/dirtools/internal/logging"
	"github.com/webgovernor/dirtools/internal/tools"
)

func connect(t *testing.T, work string) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv, err := New(tools.DefaultRegistry(tools.Options{WorkDir: work}), "test", logging.ForTests())
	if err != nil {
		t.Fatal(err)
	}
	serverT, clientT := mcp.NewInMemoryTransports()
	ss, err := srv.Connect(ctx, serverT)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cs.Close() })
	return cs
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content = %d blocks", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T", res.Content[0])
	}
	return tc.Text
}

func TestListTools(t *testing.T) {
	cs := connect(t, t.TempDir())
	res, err := cs.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"ls", "tree", "create_directory"} {
		if !names[want] {
			t.Errorf("tool %q not listed", want)
		}
	}
}

func TestCallTool(t *testing.T) {
	work := t.TempDir()
	cs := connect(t, work)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "create_directory",
		Arguments: map[string]any{"dir_path": "out/nested"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := text(t, res); got != "Successfully created directory: out/nested" || res.IsError {
		t.Errorf("create = %q (error %v)", got, res.IsError)
	}
	if _, err := os.Stat(filepath.Join(work, "out", "nested")); err != nil {
		t.Errorf("directory missing: %v", err)
	}

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "tree",
		Arguments: map[string]any{"path": "../etc"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := text(t, res); !strings.HasPrefix(got, "Error: Invalid path") || !res.IsError {
		t.Errorf("tree = %q (error %v)", got, res.IsError)
	}
}
