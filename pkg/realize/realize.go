// Package realize turns csg expression trees into kernel solids and
// triangle meshes. One mesh is produced per assembled part.
package realize

import (
	"context"
	"fmt"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/kernel"
)

// Realizer evaluates trees with one kernel.
type Realizer struct {
	k kernel.Kernel
	// fn raises cylinder facet counts; zero keeps each node's own count.
	fn int
}

// New returns a Realizer for k. fn is the mesh-resolution hint.
func New(k kernel.Kernel, fn int) *Realizer {
	return &Realizer{k: k, fn: fn}
}

// Solid builds the kernel solid for n. Kernel panics on degenerate input
// are returned as errors.
func (r *Realizer) Solid(n *csg.Node) (s kernel.Solid, err error) {
	if n == nil {
		return nil, fmt.Errorf("realize: nil node")
	}
	defer func() {
		if p := recover(); p != nil {
			s, err = nil, fmt.Errorf("realize: kernel panic: %v", p)
		}
	}()
	return r.solid(n)
}

func (r *Realizer) solid(n *csg.Node) (kernel.Solid, error) {
	switch n.Kind {
	case csg.KindBox:
		return r.k.Box(n.Size.X, n.Size.Y, n.Size.Z), nil

	case csg.KindCylinder:
		return r.k.Cylinder(n.Height, n.Radius, max(n.Segments, r.fn)), nil

	case csg.KindPrism:
		if len(n.Profile) < 3 {
			return nil, fmt.Errorf("prism profile has %d vertices", len(n.Profile))
		}
		return r.k.Prism(n.Profile, n.Depth), nil

	case csg.KindUnion, csg.KindDifference:
		return r.fold(n)

	case csg.KindTranslate:
		child, err := r.only(n)
		if err != nil {
			return nil, err
		}
		return r.k.Translate(child, n.Offset.X, n.Offset.Y, n.Offset.Z), nil

	case csg.KindRotate:
		child, err := r.only(n)
		if err != nil {
			return nil, err
		}
		return r.k.Rotate(child, n.Offset.X, n.Offset.Y, n.Offset.Z), nil

	case csg.KindFeature:
		// Tags are metadata only.
		s, err := r.only(n)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", n.Feature, err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// only realizes the single child of a unary node.
func (r *Realizer) only(n *csg.Node) (kernel.Solid, error) {
	if len(n.Children) != 1 {
		return nil, fmt.Errorf("%s node has %d children, want 1", n.Kind, len(n.Children))
	}
	return r.solid(n.Children[0])
}

// fold applies a boolean operator left to right over the children.
func (r *Realizer) fold(n *csg.Node) (kernel.Solid, error) {
	if len(n.Children) == 0 {
		return nil, fmt.Errorf("%s node has no operands", n.Kind)
	}
	acc, err := r.solid(n.Children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range n.Children[1:] {
		s, err := r.solid(c)
		if err != nil {
			return nil, err
		}
		if n.Kind == csg.KindUnion {
			acc = r.k.Union(acc, s)
		} else {
			acc = r.k.Difference(acc, s)
		}
	}
	return acc, nil
}

// Part meshes one assembled part at its placement. Degenerate geometry is
// rejected before the kernel sees it.
func (r *Realizer) Part(p assemble.Part) (m *kernel.Mesh, err error) {
	if probs := csg.Validate(p.Geometry); len(probs) > 0 {
		return nil, fmt.Errorf("realize: part %s: %s (%d problems)", p.ID, probs[0], len(probs))
	}
	s, err := r.Solid(csg.Translate(p.Geometry, p.Placement.X, p.Placement.Y, p.Placement.Z))
	if err != nil {
		return nil, fmt.Errorf("realize: part %s: %w", p.ID, err)
	}
	defer func() {
		if rec := recover(); rec != nil {
			m, err = nil, fmt.Errorf("realize: part %s: kernel panic: %v", p.ID, rec)
		}
	}()
	m, err = r.k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("realize: ToMesh failed for part %s: %w", p.ID, err)
	}
	m.PartName = p.ID
	return m, nil
}

// Parts meshes every part in order. Parts with nil geometry are skipped.
func (r *Realizer) Parts(ctx context.Context, parts []assemble.Part) ([]*kernel.Mesh, error) {
	meshes := make([]*kernel.Mesh, 0, len(parts))
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.Geometry == nil {
			continue
		}
		m, err := r.Part(p)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}
