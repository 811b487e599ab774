package realize_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/kernel"
	"github.com/chazu/slidecase/pkg/kernel/sdfx"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/pipeline"
	"github.com/chazu/slidecase/pkg/realize"
)

// traceSolid records the kernel calls that produced it.
type traceSolid string

func (traceSolid) BoundingBox() (min, max [3]float64) { return }

// traceKernel renders solids as call expressions instead of geometry.
type traceKernel struct{}

func (traceKernel) Box(x, y, z float64) kernel.Solid {
	return traceSolid(fmt.Sprintf("box(%g,%g,%g)", x, y, z))
}
func (traceKernel) Cylinder(h, r float64, seg int) kernel.Solid {
	return traceSolid(fmt.Sprintf("cyl(%g,%g,%d)", h, r, seg))
}
func (traceKernel) Prism(p [][2]float64, d float64) kernel.Solid {
	return traceSolid(fmt.Sprintf("prism(%d,%g)", len(p), d))
}
func (traceKernel) Union(a, b kernel.Solid) kernel.Solid {
	return traceSolid(fmt.Sprintf("union(%s,%s)", a, b))
}
func (traceKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return traceSolid(fmt.Sprintf("diff(%s,%s)", a, b))
}
func (traceKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return traceSolid(fmt.Sprintf("inter(%s,%s)", a, b))
}
func (traceKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return traceSolid(fmt.Sprintf("move(%s,%g,%g,%g)", s, x, y, z))
}
func (traceKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return traceSolid(fmt.Sprintf("rot(%s,%g,%g,%g)", s, x, y, z))
}
func (traceKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return &kernel.Mesh{Vertices: []float32{0, 0, 0}}, nil
}

// panicKernel fails every primitive the way sdfx does on bad sizes.
type panicKernel struct{ traceKernel }

func (panicKernel) Box(x, y, z float64) kernel.Solid { panic("size <= 0") }

func TestSolidTranslatesTree(t *testing.T) {
	tests := []struct {
		name string
		node *csg.Node
		fn   int
		want string
	}{
		{
			name: "box",
			node: csg.Box(1, 2, 3),
			want: "box(1,2,3)",
		},
		{
			name: "union folds left",
			node: csg.Union(csg.Box(1, 1, 1), csg.Box(2, 2, 2), csg.Box(3, 3, 3)),
			want: "union(union(box(1,1,1),box(2,2,2)),box(3,3,3))",
		},
		{
			name: "difference subtracts every cut",
			node: csg.Difference(csg.Box(9, 9, 9), csg.Box(1, 1, 1), csg.Box(2, 2, 2)),
			want: "diff(diff(box(9,9,9),box(1,1,1)),box(2,2,2))",
		},
		{
			name: "transforms wrap child",
			node: csg.Translate(csg.Rotate(csg.Box(1, 1, 1), 0, 0, 90), 5, 0, 0),
			want: "move(rot(box(1,1,1),0,0,90),5,0,0)",
		},
		{
			name: "feature tags are transparent",
			node: csg.Tag("retention_rib", csg.Box(1, 1, 1)),
			want: "box(1,1,1)",
		},
		{
			name: "fn raises cylinder segments",
			node: csg.Cylinder(2, 1, 32),
			fn:   64,
			want: "cyl(2,1,64)",
		},
		{
			name: "fn below node segments is ignored",
			node: csg.Cylinder(2, 1, 48),
			fn:   8,
			want: "cyl(2,1,48)",
		},
		{
			name: "prism",
			node: csg.Prism([][2]float64{{0, 0}, {1, 0}, {0, 1}}, 4),
			want: "prism(3,4)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := realize.New(traceKernel{}, tt.fn).Solid(tt.node)
			if err != nil {
				t.Fatalf("Solid: %v", err)
			}
			if got := string(s.(traceSolid)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSolidErrors(t *testing.T) {
	tests := []struct {
		name string
		k    kernel.Kernel
		node *csg.Node
		want string
	}{
		{"nil node", traceKernel{}, nil, "nil node"},
		{"short prism", traceKernel{}, csg.Prism([][2]float64{{0, 0}, {1, 1}}, 1), "2 vertices"},
		{"unknown kind", traceKernel{}, &csg.Node{Kind: csg.Kind(42)}, "unknown node kind"},
		{"kernel panic", panicKernel{}, csg.Box(0, 1, 1), "kernel panic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := realize.New(tt.k, 0).Solid(tt.node)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestPartAppliesPlacement(t *testing.T) {
	r := realize.New(sdfx.NewWithCells(40), 0)
	m, err := r.Part(assemble.Part{
		ID:        "shelf",
		Geometry:  csg.Box(100, 50, 10),
		Placement: v3.Vec{X: 200, Y: 100, Z: 50},
	})
	if err != nil {
		t.Fatalf("Part: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.PartName != "shelf" {
		t.Errorf("PartName = %q, want shelf", m.PartName)
	}

	// Box spans (200,100,50)-(300,150,60); marching cubes is approximate.
	var cx, cy, cz float64
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		cx += float64(m.Vertices[i*3])
		cy += float64(m.Vertices[i*3+1])
		cz += float64(m.Vertices[i*3+2])
	}
	cx, cy, cz = cx/float64(n), cy/float64(n), cz/float64(n)
	const tol = 10.0
	if abs(cx-250) > tol || abs(cy-125) > tol || abs(cz-55) > tol {
		t.Errorf("centroid = (%.1f, %.1f, %.1f), want near (250, 125, 55)", cx, cy, cz)
	}
}

func TestPartsStandardBox(t *testing.T) {
	res, err := pipeline.Generate(params.Default())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	meshes, err := realize.New(sdfx.NewWithCells(96), 0).Parts(context.Background(), res.Parts)
	if err != nil {
		t.Fatalf("Parts: %v", err)
	}
	if len(meshes) != len(res.Parts) {
		t.Fatalf("got %d meshes, want %d", len(meshes), len(res.Parts))
	}
	for i, m := range meshes {
		if m.PartName != res.Parts[i].ID {
			t.Errorf("mesh %d named %q, want %q", i, m.PartName, res.Parts[i].ID)
		}
		if m.TriangleCount() == 0 {
			t.Errorf("mesh %s has no triangles", m.PartName)
		}
	}
}

func TestPartsSkipsEmptyAndHonoursContext(t *testing.T) {
	r := realize.New(traceKernel{}, 0)
	parts := []assemble.Part{{ID: "a", Geometry: csg.Box(1, 1, 1)}, {ID: "ghost"}}

	meshes, err := r.Parts(context.Background(), parts)
	if err != nil {
		t.Fatalf("Parts: %v", err)
	}
	if len(meshes) != 1 || meshes[0].PartName != "a" {
		t.Errorf("meshes = %v", meshes)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Parts(ctx, parts); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestPartRejectsDegenerateGeometry(t *testing.T) {
	r := realize.New(traceKernel{}, 0)
	_, err := r.Part(assemble.Part{ID: "lid", Geometry: csg.Union(csg.Box(1, 1, 1), csg.Box(1, -2, 1))})
	if err == nil || !strings.Contains(err.Error(), "box dimension Y") || !strings.Contains(err.Error(), "lid") {
		t.Errorf("error = %v", err)
	}
}
