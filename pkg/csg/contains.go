package csg

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Contains reports whether p lies strictly inside the solid n. Points on the
// surface of a leaf are outside, so two bodies that only touch never share a
// point; faces exposed by a difference count as material. Cylinders are
// treated as true circles whatever their segment count.
func Contains(n *Node, p v3.Vec) bool {
	switch n.Kind {
	case KindBox:
		return p.X > 0 && p.Y > 0 && p.Z > 0 &&
			p.X < n.Size.X && p.Y < n.Size.Y && p.Z < n.Size.Z
	case KindCylinder:
		return p.Z > 0 && p.Z < n.Height && math.Hypot(p.X, p.Y) < n.Radius
	case KindPrism:
		return p.Y > 0 && p.Y < n.Depth && insidePolygon(n.Profile, p.X, p.Z)
	case KindUnion:
		for _, c := range n.Children {
			if Contains(c, p) {
				return true
			}
		}
		return false
	case KindDifference:
		if !Contains(n.Children[0], p) {
			return false
		}
		for _, c := range n.Children[1:] {
			if Contains(c, p) {
				return false
			}
		}
		return true
	case KindTranslate:
		return Contains(n.Children[0], p.Sub(n.Offset))
	case KindRotate:
		return Contains(n.Children[0], RotationMatrix(n.Offset).Inverse().MulPosition(p))
	case KindFeature:
		return Contains(n.Children[0], p)
	}
	return false
}

// insidePolygon is the even-odd crossing test.
func insidePolygon(poly [][2]float64, x, z float64) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a[1] > z) != (b[1] > z) {
			if x < (b[0]-a[0])*(z-a[1])/(b[1]-a[1])+a[0] {
				in = !in
			}
		}
	}
	return in
}
