package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/slidecase/pkg/params"
)

func TestParseSets(t *testing.T) {
	got, err := parseSets([]string{"num-slots=30", " tolerance_z = 0.3 "})
	if err != nil {
		t.Fatalf("parseSets: %v", err)
	}
	if got["num_slots"] != "30" || got["tolerance_z"] != "0.3" {
		t.Errorf("parseSets = %v", got)
	}

	for _, bad := range []string{"num_slots", "=3"} {
		if _, err := parseSets([]string{bad}); err == nil {
			t.Errorf("parseSets(%q) should fail", bad)
		}
	}
}

func TestParamFlagsLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rack.toml")
	if err := os.WriteFile(path, []byte("mode = \"staining_rack\"\nnum_slots = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		flags paramFlags
		path  string
		check func(params.Params) bool
	}{
		{
			name:  "defaults",
			check: func(p params.Params) bool { return p == params.Default() },
		},
		{
			name:  "file",
			path:  path,
			check: func(p params.Params) bool { return p.Mode == params.ModeStainingRack && p.NumSlots == 12 },
		},
		{
			name:  "mode flag wins over file",
			flags: paramFlags{mode: "tray"},
			path:  path,
			check: func(p params.Params) bool { return p.Mode == params.ModeTray && p.NumSlots == 12 },
		},
		{
			name:  "set overrides file",
			flags: paramFlags{sets: []string{"num_slots=40", "handle=false"}},
			path:  path,
			check: func(p params.Params) bool { return p.NumSlots == 40 && !p.Handle },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.flags.load(tt.path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !tt.check(p) {
				t.Errorf("unexpected params: %+v", p)
			}
		})
	}

	bad := paramFlags{mode: "shelf"}
	if _, err := bad.load(""); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestDesignName(t *testing.T) {
	p := params.Default()
	if got := designName("", p); got != "box" {
		t.Errorf("designName(\"\") = %q", got)
	}
	if got := designName("/tmp/lab/bench.toml", p); got != "bench" {
		t.Errorf("designName = %q, want bench", got)
	}
}
