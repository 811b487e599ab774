package primitive

import (
	"math"

	"github.com/chazu/slidecase/pkg/csg"
)

// MagnetClearance is the radial play added around a press-fit magnet.
const MagnetClearance = 0.1

// MagnetPocket is a subtractive cylinder for a disc magnet of the given
// diameter and thickness, opening upward through z=depth.
func MagnetPocket(diameter, depth float64) *csg.Node {
	return csg.Tag(FeatureMagnetPocket, csg.Cylinder(depth+Overcut, diameter/2+MagnetClearance, csg.MinSegments))
}

// CrossbarLattice replaces a solid floor: a frame of barW around a
// length (X) by width (Y) area with crossbars spanning Y every spacing
// along X.
func CrossbarLattice(length, width, barW, barH, spacing float64) *csg.Node {
	parts := []*csg.Node{
		csg.Box(length, barW, barH),
		csg.Translate(csg.Box(length, barW, barH), 0, width-barW, 0),
		csg.Box(barW, width, barH),
		csg.Translate(csg.Box(barW, width, barH), length-barW, 0, 0),
	}
	if spacing > barW {
		n := int(math.Floor((length - barW) / spacing))
		for i := 1; i <= n; i++ {
			x := float64(i) * spacing
			if x+barW >= length-barW {
				break
			}
			parts = append(parts, csg.Translate(csg.Box(barW, width, barH), x, 0, 0))
		}
	}
	return csg.Tag(FeatureCrossbarLattice, csg.Union(parts...))
}

// CarryHandle is two posts joined by a bar across span (X), rising height
// above z=0.
func CarryHandle(span, height, postW, depth float64) *csg.Node {
	post := csg.Box(postW, depth, height)
	return csg.Tag(FeatureCarryHandle, csg.Union(
		post,
		csg.Translate(post, span-postW, 0, 0),
		csg.Translate(csg.Box(span, depth, postW), 0, 0, height),
	))
}

// RailKind selects a drawer guide cross-section.
type RailKind int

const (
	RailTSlot RailKind = iota
	RailL
)

// railBlocks returns the rail section as rectangles {x0, z0, x1, z1} whose
// union is the polygon from railSection.
func railBlocks(kind RailKind, w, h float64) [][4]float64 {
	stem := w / 2
	if kind == RailL {
		return [][4]float64{
			{0, 0, w, h / 2},
			{w - stem/2, 0, w, h},
		}
	}
	return [][4]float64{
		{0, h/2 - stem/2, stem, h/2 + stem/2},
		{stem, 0, w, h},
	}
}

// railSection returns the XZ section of a rail w wide and h tall. The rail
// grows out of a wall at x=0.
func railSection(kind RailKind, w, h float64) [][2]float64 {
	stem := w / 2
	switch kind {
	case RailL:
		// Horizontal ledge with an upturned lip at its free end.
		t := h / 2
		return [][2]float64{{0, 0}, {w, 0}, {w, h}, {w - stem/2, h}, {w - stem/2, t}, {0, t}}
	default:
		// Stem out of the wall, cap across its end.
		return [][2]float64{
			{0, h/2 - stem/2},
			{stem, h/2 - stem/2},
			{stem, 0},
			{w, 0},
			{w, h},
			{stem, h},
			{stem, h/2 + stem/2},
			{0, h/2 + stem/2},
		}
	}
}

// Rail is a drawer guide of the given kind, running length along Y.
func Rail(kind RailKind, length, w, h float64) *csg.Node {
	return csg.Tag(FeatureRail, csg.Prism(railSection(kind, w, h), length))
}

// RailChannel is the subtractive channel for a Rail(kind, length, w, h)
// built at the same origin: the rail section grown by tol on every face and
// stretched up by lift so the rail may rise that far. Blocks that start at
// the rail root reach back through the wall face, and the channel overcuts
// both ends.
func RailChannel(kind RailKind, length, w, h, tol, lift float64) *csg.Node {
	var blocks []*csg.Node
	for _, b := range railBlocks(kind, w, h) {
		x0 := b[0] - tol
		if b[0] == 0 {
			x0 -= Overcut
		}
		sx := b[2] + tol - x0
		sz := b[3] - b[1] + 2*tol + lift
		blocks = append(blocks, csg.Translate(csg.Box(sx, length+2*Overcut, sz), x0, -Overcut, b[1]-tol))
	}
	return csg.Tag(FeatureRailChannel, csg.Union(blocks...))
}
