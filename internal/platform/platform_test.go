package platform

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func platformPtr(p Platform) *Platform { return &p }

func TestTreeDepth(t *testing.T) {
	tests := []struct {
		name      string
		requested *int
		want      int
	}{
		{"unspecified", nil, 3},
		{"zero", intPtr(0), 1},
		{"negative", intPtr(-4), 1},
		{"one", intPtr(1), 1},
		{"five", intPtr(5), 5},
		{"ten", intPtr(10), 10},
		{"huge", intPtr(999), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TreeDepth(tt.requested); got != tt.want {
				t.Errorf("TreeDepth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name   string
		op     Operation
		target string
		opts   Options
		want   CommandSpec
	}{
		{
			name:   "unix list",
			op:     List,
			target: "src",
			opts:   Options{Platform: platformPtr(Unix)},
			want:   CommandSpec{Executable: "ls", Arguments: []string{"-lA", "src"}},
		},
		{
			name:   "windows list",
			op:     List,
			target: "src",
			opts:   Options{Platform: platformPtr(Windows)},
			want:   CommandSpec{Executable: "dir", Arguments: []string{"/a", "src"}, UseShellWrapper: true},
		},
		{
			name:   "unix tree default depth",
			op:     Tree,
			target: ".",
			opts:   Options{Platform: platformPtr(Unix)},
			want:   CommandSpec{Executable: "tree", Arguments: []string{"-L", "3", "."}},
		},
		{
			name:   "unix tree depth zero clamps to one",
			op:     Tree,
			target: ".",
			opts:   Options{Platform: platformPtr(Unix), Depth: intPtr(0)},
			want:   CommandSpec{Executable: "tree", Arguments: []string{"-L", "1", "."}},
		},
		{
			name:   "unix tree depth 999 clamps to ten",
			op:     Tree,
			target: ".",
			opts:   Options{Platform: platformPtr(Unix), Depth: intPtr(999)},
			want:   CommandSpec{Executable: "tree", Arguments: []string{"-L", "10", "."}},
		},
		{
			name:   "windows tree ignores depth",
			op:     Tree,
			target: "docs",
			opts:   Options{Platform: platformPtr(Windows), Depth: intPtr(2)},
			want:   CommandSpec{Executable: "tree", Arguments: []string{"docs"}, UseShellWrapper: true},
		},
		{
			name:   "create has no command",
			op:     Create,
			target: "new",
			opts:   Options{Platform: platformPtr(Unix)},
			want:   CommandSpec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tt.op, tt.target, tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Select = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFor(t *testing.T) {
	if For("windows") != Windows {
		t.Error("windows should map to Windows")
	}
	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		if For(goos) != Unix {
			t.Errorf("%s should map to Unix", goos)
		}
	}
}

func TestCommandSpecString(t *testing.T) {
	spec := CommandSpec{Executable: "tree", Arguments: []string{"-L", "2", "src"}}
	if got := spec.String(); got != "tree -L 2 src" {
		t.Errorf("String = %q", got)
	}
}
