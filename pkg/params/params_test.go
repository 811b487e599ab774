package params

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/slidecase/pkg/slide"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"box", ModeBox, false},
		{"tray", ModeTray, false},
		{"staining_rack", ModeStainingRack, false},
		{"cabinet_drawer", ModeCabinetDrawer, false},
		{"drawer", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMode) {
					t.Fatalf("ParseMode(%q) error = %v, want ErrUnknownMode", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultSlideIsISO(t *testing.T) {
	got := Default().Slide()
	want := slide.Standard{Length: 76, Width: 26, Thickness: 1.0}
	if got != want {
		t.Errorf("Default().Slide() = %+v, want %+v", got, want)
	}
}

func TestDecodeTOMLOverlaysDefaults(t *testing.T) {
	doc := []byte(`
mode = "tray"
num_slots = 10
tolerance_z = 0.3
stackable = false
tray_columns = 3
`)
	p, err := DecodeTOML(doc)
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if p.Mode != ModeTray {
		t.Errorf("Mode = %q, want tray", p.Mode)
	}
	if p.NumSlots != 10 || p.ToleranceZ != 0.3 || p.Stackable || p.TrayColumns != 3 {
		t.Errorf("decoded fields not applied: %+v", p)
	}
	// Untouched keys keep their defaults.
	if p.WallThickness != 2.0 || p.TrayRows != 5 || !p.LabelArea {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestDecodeTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", `num_slotz = 3`},
		{"unknown mode", `mode = "shelf"`},
		{"bad syntax", `num_slots = = 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTOML([]byte(tt.doc)); err == nil {
				t.Errorf("DecodeTOML(%q) expected error", tt.doc)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mailer.toml")
	if err := os.WriteFile(path, []byte("density = 3\nlid_latch = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if p.Density != DensityMailer || p.LidLatch != LatchMagnetic {
		t.Errorf("LoadTOML = density %v latch %v, want mailer magnetic", p.Density, p.LidLatch)
	}

	if _, err := LoadTOML(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadTOML on a missing file should fail")
	}
}

func TestEncodeTOMLRoundTrip(t *testing.T) {
	in := Default()
	in.Mode = ModeCabinetDrawer
	in.DrawersPerShell = 4
	data, err := EncodeTOML(in)
	if err != nil {
		t.Fatalf("EncodeTOML: %v", err)
	}
	out, err := DecodeTOML(data)
	if err != nil {
		t.Fatalf("DecodeTOML: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestFromMap(t *testing.T) {
	p, err := FromMap(map[string]any{
		"mode":           "staining_rack",
		"slide_standard": 3,
		"num_slots":      "20",
		"drainage_angle": float32(7.5),
		"open_bottom":    true,
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if p.Mode != ModeStainingRack {
		t.Errorf("Mode = %q", p.Mode)
	}
	if p.SlideStandard != slide.SupaMega {
		t.Errorf("SlideStandard = %v, want SupaMega", p.SlideStandard)
	}
	if p.NumSlots != 20 {
		t.Errorf("NumSlots = %d, want 20", p.NumSlots)
	}
	if p.DrainageAngle != 7.5 {
		t.Errorf("DrainageAngle = %v, want 7.5", p.DrainageAngle)
	}
	if !p.OpenBottom {
		t.Error("OpenBottom = false, want true")
	}
}

func TestFromMapRejectsUnknownKeys(t *testing.T) {
	if _, err := FromMap(map[string]any{"slots": 4}); err == nil {
		t.Error("FromMap should reject unknown keys")
	}
	if _, err := FromMap(map[string]any{"mode": "crate"}); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("FromMap bad mode error = %v, want ErrUnknownMode", err)
	}
}

func TestEnumStrings(t *testing.T) {
	if DensityStaining.String() != "staining" {
		t.Errorf("DensityStaining = %q", DensityStaining.String())
	}
	if LatchNone.String() != "none" {
		t.Errorf("LatchNone = %q", LatchNone.String())
	}
	if Density(9).String() != "Density(9)" {
		t.Errorf("Density(9) = %q", Density(9).String())
	}
}

func TestApplyKeepsBase(t *testing.T) {
	base := Default()
	base.Mode = ModeTray
	base.TrayRows = 8

	p, err := Apply(base, map[string]any{"tray_columns": "4"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if p.Mode != ModeTray || p.TrayRows != 8 || p.TrayColumns != 4 {
		t.Errorf("Apply = mode %s rows %d cols %d", p.Mode, p.TrayRows, p.TrayColumns)
	}
	if base.TrayColumns != Default().TrayColumns {
		t.Error("Apply mutated its input")
	}
}
