// Package csg is a small immutable constructive-solid-geometry expression
// tree. Primitives and assemblies build trees; a kernel realises them.
//
// Leaf conventions match kernel.Kernel: a box has its minimum corner at the
// origin, a cylinder stands on z=0 around the Z axis, and a prism extrudes
// an XZ profile along +Y over [0, depth].
package csg

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Kind identifies the node type.
type Kind int

const (
	KindBox Kind = iota
	KindCylinder
	KindPrism
	KindUnion
	KindDifference
	KindTranslate
	KindRotate
	KindFeature
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCylinder:
		return "cylinder"
	case KindPrism:
		return "prism"
	case KindUnion:
		return "union"
	case KindDifference:
		return "difference"
	case KindTranslate:
		return "translate"
	case KindRotate:
		return "rotate"
	case KindFeature:
		return "feature"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MinSegments is the lowest facet count used for cylinders.
const MinSegments = 32

// Node is one expression. Nodes are never modified after construction;
// every operator returns a new node that shares its operands.
type Node struct {
	Kind Kind

	Size     v3.Vec       // box
	Height   float64      // cylinder
	Radius   float64      // cylinder
	Segments int          // cylinder
	Profile  [][2]float64 // prism, XZ vertices counter-clockwise
	Depth    float64      // prism

	Offset  v3.Vec // translate: distance, rotate: degrees about X, Y, Z
	Feature string // feature tag

	Children []*Node
}

// Box returns an axis-aligned box.
func Box(x, y, z float64) *Node {
	return &Node{Kind: KindBox, Size: v3.Vec{X: x, Y: y, Z: z}}
}

// Cylinder returns a Z-axis cylinder. Segment counts below MinSegments are
// raised to it.
func Cylinder(height, radius float64, segments int) *Node {
	if segments < MinSegments {
		segments = MinSegments
	}
	return &Node{Kind: KindCylinder, Height: height, Radius: radius, Segments: segments}
}

// Prism returns an extrusion of profile along +Y.
func Prism(profile [][2]float64, depth float64) *Node {
	pts := make([][2]float64, len(profile))
	copy(pts, profile)
	return &Node{Kind: KindPrism, Profile: pts, Depth: depth}
}

// Union combines nodes. Nil operands are skipped and a single operand is
// returned unchanged.
func Union(nodes ...*Node) *Node {
	kids := compact(nodes)
	if len(kids) == 1 {
		return kids[0]
	}
	return &Node{Kind: KindUnion, Children: kids}
}

// Difference subtracts cuts from base. Nil cuts are skipped.
func Difference(base *Node, cuts ...*Node) *Node {
	kids := compact(cuts)
	if len(kids) == 0 {
		return base
	}
	return &Node{Kind: KindDifference, Children: append([]*Node{base}, kids...)}
}

// Translate moves n.
func Translate(n *Node, x, y, z float64) *Node {
	if x == 0 && y == 0 && z == 0 {
		return n
	}
	return &Node{Kind: KindTranslate, Offset: v3.Vec{X: x, Y: y, Z: z}, Children: []*Node{n}}
}

// Rotate turns n by Euler angles in degrees, applied X then Y then Z.
func Rotate(n *Node, x, y, z float64) *Node {
	if x == 0 && y == 0 && z == 0 {
		return n
	}
	return &Node{Kind: KindRotate, Offset: v3.Vec{X: x, Y: y, Z: z}, Children: []*Node{n}}
}

// Tag marks n as an instance of a named feature. Tags carry no geometry.
func Tag(feature string, n *Node) *Node {
	return &Node{Kind: KindFeature, Feature: feature, Children: []*Node{n}}
}

func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns how many times feature is tagged in n.
func Count(n *Node, feature string) int {
	count := 0
	Walk(n, func(n *Node, _ int) bool {
		if n.Kind == KindFeature && n.Feature == feature {
			count++
		}
		return true
	})
	return count
}

// Features tallies every feature tag in n.
func Features(n *Node) map[string]int {
	out := map[string]int{}
	Walk(n, func(n *Node, _ int) bool {
		if n.Kind == KindFeature {
			out[n.Feature]++
		}
		return true
	})
	return out
}

// Find returns the feature nodes tagged feature, in walk order.
func Find(n *Node, feature string) []*Node {
	var out []*Node
	Walk(n, func(n *Node, _ int) bool {
		if n.Kind == KindFeature && n.Feature == feature {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Size returns the number of nodes in n.
func Size(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool { count++; return true })
	return count
}
