package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/webgovernor/dirtools/internal/db"
	"github.com/webgovernor/dirtools/internal/tools"
)

func TestJournal(t *testing.T) {
	database, err := db.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	work := t.TempDir()
	svc, err := NewService(database, work, "call")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svc.SessionID(), "ses_") {
		t.Errorf("session id = %q", svc.SessionID())
	}

	registry := tools.DefaultRegistry(tools.Options{WorkDir: work})
	svc.Attach(registry)

	ctx := context.Background()
	registry.Execute(ctx, "create_directory", json.RawMessage(`{"dir_path": "docs"}`))
	registry.Execute(ctx, "ls", nil)
	registry.Execute(ctx, "tree", json.RawMessage(`{"path": "../up"}`))

	if n, err := svc.Count(); err != nil || n != 3 {
		t.Fatalf("count = %d, %v", n, err)
	}

	recent, err := svc.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d entries", len(recent))
	}
	if recent[0].Tool != "tree" || !recent[0].IsError {
		t.Errorf("newest = %+v", recent[0])
	}
	if recent[1].Tool != "ls" || recent[1].Input != "{}" || recent[1].IsError {
		t.Errorf("second = %+v", recent[1])
	}

	if err := svc.Clear(); err != nil {
		t.Fatal(err)
	}
	if n, _ := svc.Count(); n != 0 {
		t.Errorf("count after clear = %d", n)
	}
}
