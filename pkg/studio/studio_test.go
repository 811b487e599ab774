package studio

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chazu/slidecase/pkg/kernel/sdfx"
)

func newStudio() *Studio {
	return NewWithKernel(sdfx.NewWithCells(96))
}

// TestE2EStandardBox exercises the full path: script -> engine -> pipeline
// -> realize -> meshes.
func TestE2EStandardBox(t *testing.T) {
	result := newStudio().Evaluate(context.Background(), `
; Standard 25-place box
(defdesign "standard-25"
  (slide-box :slide :iso :num-slots 25 :density :working :lid-latch :snap-fit))
`)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(result.Meshes))
	}

	expected := map[string]bool{"box_base": false, "box_lid": false}
	for _, m := range result.Meshes {
		if _, ok := expected[m.PartName]; !ok {
			t.Errorf("unexpected part name: %q", m.PartName)
			continue
		}
		expected[m.PartName] = true
		if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
			t.Errorf("part %q: empty geometry", m.PartName)
		}
		if m.Color == "" {
			t.Errorf("part %q: no color assigned", m.PartName)
		}
		if m.Design != "standard-25" {
			t.Errorf("part %q: design = %q", m.PartName, m.Design)
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("missing mesh for part %q", name)
		}
	}
	if len(result.Designs) != 1 || result.Designs[0].Parts != 2 || result.Designs[0].Blocked {
		t.Errorf("designs = %+v", result.Designs)
	}
}

// TestE2EEmptySource checks that empty input yields empty, non-nil slices
// so the JSON carries [] rather than null.
func TestE2EEmptySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "; just a comment\n"} {
		result := newStudio().Evaluate(context.Background(), src)
		if len(result.Errors) != 0 || len(result.Meshes) != 0 || len(result.Warnings) != 0 {
			t.Errorf("%q: got %+v", src, result)
		}
		data, err := json.Marshal(result)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "null") {
			t.Errorf("%q: JSON contains null: %s", src, data)
		}
	}
}

func TestE2ESyntaxError(t *testing.T) {
	result := newStudio().Evaluate(context.Background(), "(+ 1 2)\n(defdesign \"test\"")
	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
}

func TestE2EBuilderError(t *testing.T) {
	result := newStudio().Evaluate(context.Background(), `(slide-box :slot-count 3)`)
	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0].Message, "slot_count") {
		t.Errorf("errors = %+v", result.Errors)
	}
}

// TestE2EBlockedDesign checks a design with error findings is reported
// without meshes while its sibling still renders.
func TestE2EBlockedDesign(t *testing.T) {
	result := newStudio().Evaluate(context.Background(), `
(defdesign "empty" (slide-box :num-slots 0))
(defdesign "thin" (slide-box :num-slots 4 :wall-thickness 1.0))
`)
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %+v, want one", result.Errors)
	}
	if e := result.Errors[0]; e.Design != "empty" || e.RuleID != "min_slots" {
		t.Errorf("error = %+v", e)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].RuleID != "min_wall_thickness" {
		t.Errorf("warnings = %+v", result.Warnings)
	}
	if len(result.Meshes) != 2 {
		t.Fatalf("got %d meshes, want 2 from the valid design", len(result.Meshes))
	}
	for _, m := range result.Meshes {
		if m.Design != "thin" {
			t.Errorf("mesh %s belongs to %q", m.PartName, m.Design)
		}
	}
	if !result.Designs[0].Blocked || result.Designs[1].Blocked {
		t.Errorf("designs = %+v", result.Designs)
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	s := NewWithKernel(sdfx.NewWithCells(32))
	sources := []string{
		`(slide-box :num-slots 3)`,
		`(+ 1 2)`,
		``,
		`(slide-box :num-slots`,
		`(slide-box :num-slots 0)`,
		`(slide-box :num-slots 2 :lid-latch :none)`,
	}
	for i, src := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			_ = s.Evaluate(context.Background(), src)
		}()
	}
}

func TestE2ECancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := newStudio().Evaluate(ctx, `(slide-box :num-slots 3)`)
	if len(result.Meshes) != 0 {
		t.Errorf("meshes produced after cancel: %d", len(result.Meshes))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0].Message, "meshing failed") {
		t.Errorf("errors = %+v", result.Errors)
	}
}
