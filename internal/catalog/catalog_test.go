package catalog

import (
	"strings"
	"testing"

	"github.com/webgovernor/dirtools/internal/tools"
)

func TestTools(t *testing.T) {
	out := Tools(tools.DefaultRegistry(tools.Options{WorkDir: t.TempDir()}))

	for _, want := range []string{
		"## ls",
		"## tree",
		"## create_directory",
		"| `dir_path` | string | yes |",
		"| `depth` | integer | no |",
		"asks for approval",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog missing %q:\n%s", want, out)
		}
	}

	// positional parameters come first
	if strings.Index(out, "| `path` | string | no |") > strings.Index(out, "| `depth` |") {
		t.Error("tree parameters out of positional order")
	}
	if strings.Index(out, "## ls") > strings.Index(out, "## tree") {
		t.Error("tools out of registration order")
	}
}

func TestEmbeddedDocs(t *testing.T) {
	if !strings.HasPrefix(Intro(), "# dirtools") {
		t.Errorf("intro = %q", Intro())
	}
	if !strings.Contains(ConsoleHelp(), "ctrl+t") {
		t.Error("console help does not mention the mode key")
	}
	if env := Environment("/work", "native", true); !strings.Contains(env, "- Mode: READ") {
		t.Errorf("environment = %q", env)
	}
}
