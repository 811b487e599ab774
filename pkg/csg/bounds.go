package csg

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Bounds returns the analytic axis-aligned bounding box of n. Differences
// report the bounds of their base; rotations report the box enclosing the
// rotated child box.
func Bounds(n *Node) sdf.Box3 {
	switch n.Kind {
	case KindBox:
		return sdf.Box3{Max: n.Size}
	case KindCylinder:
		r := n.Radius
		return sdf.Box3{Min: v3.Vec{X: -r, Y: -r}, Max: v3.Vec{X: r, Y: r, Z: n.Height}}
	case KindPrism:
		return prismBounds(n)
	case KindUnion:
		b := Bounds(n.Children[0])
		for _, c := range n.Children[1:] {
			b = b.Extend(Bounds(c))
		}
		return b
	case KindDifference, KindFeature:
		return Bounds(n.Children[0])
	case KindTranslate:
		b := Bounds(n.Children[0])
		return sdf.Box3{Min: b.Min.Add(n.Offset), Max: b.Max.Add(n.Offset)}
	case KindRotate:
		return RotationMatrix(n.Offset).MulBox(Bounds(n.Children[0]))
	}
	return sdf.Box3{}
}

func prismBounds(n *Node) sdf.Box3 {
	if len(n.Profile) == 0 {
		return sdf.Box3{}
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, p := range n.Profile {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minZ = math.Min(minZ, p[1])
		maxZ = math.Max(maxZ, p[1])
	}
	return sdf.Box3{
		Min: v3.Vec{X: minX, Y: 0, Z: minZ},
		Max: v3.Vec{X: maxX, Y: n.Depth, Z: maxZ},
	}
}

// RotationMatrix builds the X-then-Y-then-Z rotation for Euler angles in
// degrees, the same composition the kernels use.
func RotationMatrix(deg v3.Vec) sdf.M44 {
	return sdf.RotateZ(sdf.DtoR(deg.Z)).Mul(sdf.RotateY(sdf.DtoR(deg.Y))).Mul(sdf.RotateX(sdf.DtoR(deg.X)))
}
