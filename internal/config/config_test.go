package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/webgovernor/dirtools/internal/tools"
)

// isolate points every user-level location at a fresh directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	for _, k := range []string{"DIRTOOLS_BACKEND", "DIRTOOLS_LOG_LEVEL", "DIRTOOLS_DATA_DIR", "DIRTOOLS_CONFINE", "DIRTOOLS_JOURNAL"} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	work := t.TempDir()

	cfg, err := Load(work)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "native" || cfg.TimeoutSeconds != 15 || cfg.ListMaxLines != 100 || cfg.TreeMaxLines != 200 || cfg.TreeDepth != 3 {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.Journal || cfg.Confine {
		t.Errorf("journal=%v confine=%v", cfg.Journal, cfg.Confine)
	}
	wantData := filepath.Join(home, ".local", "share", "dirtools")
	if cfg.DataDir != wantData {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, wantData)
	}
	if cfg.LogFile != filepath.Join(wantData, "dirtools.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if _, err := os.Stat(cfg.DataDir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}

func TestLoadProjectFileAndEnv(t *testing.T) {
	isolate(t)
	work := t.TempDir()
	file := `{"backend": "exec", "treeMaxLines": 50, "ignore": ["**/node_modules"], "confine": true}`
	if err := os.WriteFile(filepath.Join(work, ".dirtools.json"), []byte(file), 0o644); err != nil {
		t.Fatal(err)
	}
	data := t.TempDir()
	t.Setenv("DIRTOOLS_DATA_DIR", data)
	t.Setenv("DIRTOOLS_BACKEND", "native")
	t.Setenv("DIRTOOLS_JOURNAL", "false")

	cfg, err := Load(work)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "native" {
		t.Errorf("env should override file backend, got %q", cfg.Backend)
	}
	if cfg.TreeMaxLines != 50 || !cfg.Confine || len(cfg.Ignore) != 1 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Journal {
		t.Error("DIRTOOLS_JOURNAL=false not applied")
	}
	if cfg.DataDir != data || cfg.DBPath() != filepath.Join(data, "dirtools.db") {
		t.Errorf("DataDir = %q, DBPath = %q", cfg.DataDir, cfg.DBPath())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want string
	}{
		{name: "bad json", file: `{"backend":`, want: "parsing config"},
		{name: "bad backend", file: `{"backend": "ftp"}`, want: "unknown backend"},
		{name: "bad budget", file: `{"listMaxLines": 0}`, want: "listMaxLines must be positive"},
		{name: "bad depth", file: `{"treeDepth": 11}`, want: "treeDepth must be between"},
		{name: "bad pattern", file: `{"ignore": ["[abc"]}`, want: "invalid ignore pattern"},
		{name: "bad bool", env: map[string]string{"DIRTOOLS_CONFINE": "maybe"}, want: "DIRTOOLS_CONFINE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			work := t.TempDir()
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(work, ".dirtools.json"), []byte(tt.file), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(work)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestToolOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkDir = "/work"
	cfg.Backend = "EXEC"
	cfg.TimeoutSeconds = 2

	opts := cfg.ToolOptions()
	if opts.Backend != tools.BackendExec {
		t.Errorf("Backend = %q", opts.Backend)
	}
	if opts.Timeout != 2*time.Second || opts.WorkDir != "/work" || opts.TreeDepth != 3 {
		t.Errorf("opts = %+v", opts)
	}
}
