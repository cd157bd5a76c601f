package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw    string
		want   zerolog.Level
		wantOK bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARNING ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseLevel(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTestProfileIsSilentByDefault(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if got := ForTests().GetLevel(); got != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", got)
	}

	t.Setenv(EnvLogLevel, "debug")
	if got := ForTests().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}

func TestRuntimeFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	file := filepath.Join(t.TempDir(), "logs", "dirtools.log")

	logger, closer := New(Settings{Profile: ProfileRuntime, Level: "warn", File: file, App: "dirtools"})
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Contains(text, "hidden") || !strings.Contains(text, "shown") || !strings.Contains(text, `"app":"dirtools"`) {
		t.Errorf("log file = %s", text)
	}
}
