package pipeline

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/constraint"
	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/primitive"
	"github.com/chazu/slidecase/pkg/slide"
)

func TestGenerateStandardBox(t *testing.T) {
	p := params.Default()
	p.SlideStandard = slide.ISO
	p.NumSlots = 25
	p.Density = params.DensityWorking
	p.LidLatch = params.LatchSnapFit
	p.Stackable = true

	res, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Report.Findings) != 0 {
		t.Errorf("unexpected findings: %v", res.Report.Findings)
	}
	ids := []string{res.Parts[0].ID, res.Parts[1].ID}
	if len(res.Parts) != 2 || !slices.Equal(ids, []string{assemble.PartBoxBase, assemble.PartBoxLid}) {
		t.Fatalf("parts = %v", ids)
	}
	if got := csg.Count(res.Parts[0].Geometry, primitive.FeatureRetentionRib); got != 26 {
		t.Errorf("ribs = %d, want 26", got)
	}
	if res.Geometry.Pitch != 3.0 {
		t.Errorf("pitch = %v, want 3.0", res.Geometry.Pitch)
	}
}

func TestGenerateBlocksOnErrors(t *testing.T) {
	p := params.Default()
	p.NumSlots = 0

	res, err := Generate(p)
	var cerr *constraint.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *constraint.Error", err)
	}
	if !slices.Equal(cerr.RuleIDs(), []string{"min_slots"}) {
		t.Errorf("rule ids = %v", cerr.RuleIDs())
	}
	if len(res.Parts) != 0 {
		t.Errorf("parts produced despite errors: %d", len(res.Parts))
	}
	if !res.Report.HasErrors() {
		t.Error("result report lost the error")
	}
}

func TestGenerateWarningsDoNotBlock(t *testing.T) {
	p := params.Default()
	p.SlideStandard = slide.SupaMega
	p.Density = params.DensityArchival

	res, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Report.Warnings()) != 1 || len(res.Report.Errors()) != 0 {
		t.Errorf("report = %+v", res.Report)
	}
	if len(res.Parts) != 2 {
		t.Errorf("parts = %d, want 2", len(res.Parts))
	}
}

func TestGenerateUnknownMode(t *testing.T) {
	p := params.Default()
	p.Mode = "shelf"
	if _, err := Generate(p); !errors.Is(err, params.ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	p := params.Default()
	a, errA := Generate(p)
	b, errB := Generate(p)
	if errA != nil || errB != nil {
		t.Fatal(errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical parameters produced different results")
	}
}

func TestGenerateAll(t *testing.T) {
	reqs := AllModes(params.Default())
	bad := params.Default()
	bad.NumSlots = 0
	reqs = append(reqs, Request{Name: "broken", Params: bad})

	out, err := GenerateAll(context.Background(), reqs)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if len(out) != len(reqs) {
		t.Fatalf("got %d outcomes, want %d", len(out), len(reqs))
	}
	for i, o := range out[:4] {
		if o.Err != nil {
			t.Errorf("%s: %v", o.Name, o.Err)
		}
		if o.Name != reqs[i].Name || o.Params.Mode != params.Modes[i] {
			t.Errorf("outcome %d is %s/%s, out of order", i, o.Name, o.Params.Mode)
		}
		n, _ := assemble.PartCount(o.Params.Mode, o.Params)
		if len(o.Parts) != n {
			t.Errorf("%s: %d parts, want %d", o.Name, len(o.Parts), n)
		}
	}
	if last := out[4]; last.Err == nil || len(last.Parts) != 0 {
		t.Errorf("broken request: err=%v parts=%d", last.Err, len(last.Parts))
	}
}

func TestGenerateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := GenerateAll(ctx, AllModes(params.Default())); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
