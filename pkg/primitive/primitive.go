// Package primitive is the shared library of parametric features. Every
// function returns a self-contained csg tree with its reference corner at
// the origin; callers place instances with csg.Translate and combine them
// with csg.Union or csg.Difference.
//
// Axis convention: X runs across the slot array, Y along the slide length
// and Z up.
package primitive

import (
	"math"

	"github.com/chazu/slidecase/pkg/csg"
)

// Feature tags attached to the trees this package builds.
const (
	FeatureRetentionRib     = "retention_rib"
	FeatureSlotArray        = "slot_array"
	FeatureAntiCapillary    = "anti_capillary"
	FeatureAntiCapillaryRib = "anti_capillary_rib"
	FeatureFingerNotch      = "finger_notch"
	FeatureStackingLip      = "stacking_lip"
	FeatureStackingGroove   = "stacking_groove"
	FeatureLabelRecess      = "label_recess"
	FeatureSnapLatchArm     = "snap_latch_arm"
	FeatureSnapLatchCatch   = "snap_latch_catch"
	FeatureStackTabMale     = "stack_tab_male"
	FeatureStackTabFemale   = "stack_tab_female"
	FeatureDrainageSlope    = "drainage_slope"
	FeatureMagnetPocket     = "magnet_pocket"
	FeatureCrossbarLattice  = "crossbar_lattice"
	FeatureCarryHandle      = "carry_handle"
	FeatureRail             = "rail"
	FeatureRailChannel      = "rail_channel"
)

const (
	// AntiCapillaryRailWidth is the width of each anti-capillary rail.
	AntiCapillaryRailWidth = 2.0

	// Overcut is how far subtractive tools reach past the surface they
	// open so no faces coincide.
	Overcut = 0.5

	// MinLipTopWidth is the narrowest a chamfered stacking lip gets.
	MinLipTopWidth = 1.0

	// GrooveClearance is added to the lip height and width for its groove.
	GrooveClearance = 0.2

	// MinSlabThickness is the thinnest a drainage slab may get at its low
	// end.
	MinSlabThickness = 0.4
)

// Rib describes one retention rib.
type Rib struct {
	Height        float64
	Depth         float64 // along Y
	RootWidth     float64
	TipWidth      float64
	ChamferHeight float64
	Tapered       bool
}

// RetentionRib builds a rib of the given height. A tapered rib is a
// rectangular block for the lower Height-ChamferHeight capped by a wedge
// that narrows to a centered tip; a rectangular rib is a plain block of
// RootWidth and the tip width is ignored.
func RetentionRib(r Rib) *csg.Node {
	if !r.Tapered || r.ChamferHeight <= 0 || r.TipWidth >= r.RootWidth {
		return csg.Tag(FeatureRetentionRib, csg.Box(r.RootWidth, r.Depth, r.Height))
	}
	chamfer := math.Min(r.ChamferHeight, r.Height)
	body := r.Height - chamfer
	inset := (r.RootWidth - r.TipWidth) / 2
	wedge := csg.Prism([][2]float64{
		{0, body},
		{r.RootWidth, body},
		{r.RootWidth - inset, r.Height},
		{inset, r.Height},
	}, r.Depth)
	if body <= 0 {
		return csg.Tag(FeatureRetentionRib, wedge)
	}
	return csg.Tag(FeatureRetentionRib, csg.Union(csg.Box(r.RootWidth, r.Depth, body), wedge))
}

// SlotArray places count+1 ribs at pitch along X, bounding count slots.
// Negative counts are treated as zero.
func SlotArray(count int, pitch float64, r Rib) *csg.Node {
	if count < 0 {
		count = 0
	}
	rib := RetentionRib(r)
	ribs := make([]*csg.Node, 0, count+1)
	for i := 0; i <= count; i++ {
		ribs = append(ribs, csg.Translate(rib, float64(i)*pitch, 0, 0))
	}
	return csg.Tag(FeatureSlotArray, csg.Union(ribs...))
}

// SlotArrayLength is the X extent of a slot array.
func SlotArrayLength(count int, pitch, ribWidth float64) float64 {
	if count < 0 {
		count = 0
	}
	return float64(count)*pitch + ribWidth
}

// AntiCapillaryRibs builds two rails running the pocket length (Y) at 25%
// and 75% of the pocket width (X).
func AntiCapillaryRibs(pocketLength, pocketWidth, ribHeight float64) *csg.Node {
	rail := csg.Tag(FeatureAntiCapillaryRib, csg.Box(AntiCapillaryRailWidth, pocketLength, ribHeight))
	half := AntiCapillaryRailWidth / 2
	return csg.Tag(FeatureAntiCapillary, csg.Union(
		csg.Translate(rail, 0.25*pocketWidth-half, 0, 0),
		csg.Translate(rail, 0.75*pocketWidth-half, 0, 0),
	))
}

// FingerNotch is a subtractive cylinder whose base sits at the notch floor.
// It reaches Overcut above the nominal depth.
func FingerNotch(radius, depth float64, segments int) *csg.Node {
	if segments < csg.MinSegments {
		segments = csg.MinSegments
	}
	return csg.Tag(FeatureFingerNotch, csg.Cylinder(depth+Overcut, radius, segments))
}

// LipChamfer is the 45 degree chamfer on a lip of width lipW.
func LipChamfer(lipW float64) float64 {
	return math.Max(0, lipW-MinLipTopWidth)
}

// StackingLip is a perimeter wall of lipW by lipH around an outerX by
// outerY footprint, its outward top edge chamfered at 45 degrees.
func StackingLip(outerX, outerY, lipH, lipW float64) *csg.Node {
	return csg.Tag(FeatureStackingLip, ring(outerX, outerY, lipW, lipH, math.Min(LipChamfer(lipW), lipH)))
}

// StackingGroove is the subtractive channel matching StackingLip with
// GrooveClearance added to height and width. It is centered on the lip it
// receives: its footprint grows by GrooveClearance and its origin moves
// -GrooveClearance/2 in X and Y.
func StackingGroove(outerX, outerY, lipH, lipW float64) *csg.Node {
	c := GrooveClearance
	g := ring(outerX+c, outerY+c, lipW+c, lipH+c, 0)
	return csg.Tag(FeatureStackingGroove, csg.Translate(g, -c/2, -c/2, 0))
}

// ring builds four walls of width w and height h whose outer faces trace
// an outerX by outerY rectangle. chamfer cuts the outer top edge.
func ring(outerX, outerY, w, h, chamfer float64) *csg.Node {
	// Wall section with its outer face at x=0.
	outer := [][2]float64{{0, 0}, {w, 0}, {w, h}, {chamfer, h}, {0, h - chamfer}}
	// Mirror image with its outer face at x=w.
	inner := [][2]float64{{0, 0}, {w, 0}, {w, h - chamfer}, {w - chamfer, h}, {0, h}}
	if chamfer <= 0 {
		outer = [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
		inner = outer
	}
	left := csg.Prism(outer, outerY)
	right := csg.Translate(csg.Prism(inner, outerY), outerX-w, 0, 0)
	// Turning a Y-extruded section 90 degrees about Z maps its X onto Y.
	front := csg.Translate(csg.Rotate(csg.Prism(outer, outerX), 0, 0, 90), outerX, 0, 0)
	back := csg.Translate(csg.Rotate(csg.Prism(inner, outerX), 0, 0, 90), outerX, outerY-w, 0)
	return csg.Union(left, right, front, back)
}

// extrudeX extrudes a YZ section along +X over [0, length].
func extrudeX(section [][2]float64, length float64) *csg.Node {
	// A -90 degree turn about Z sends the prism's X to -Y, so the section's
	// first coordinate is negated beforehand and the winding restored.
	n := len(section)
	flipped := make([][2]float64, n)
	for i, p := range section {
		flipped[n-1-i] = [2]float64{-p[0], p[1]}
	}
	return csg.Rotate(csg.Prism(flipped, length), 0, 0, -90)
}

// LabelRecess is a subtractive pocket width (X) by height (Z), depth deep
// into a wall whose outer face is y=0. A 45 degree relief above the pocket
// removes the overhang along its top edge.
func LabelRecess(width, height, depth float64) *csg.Node {
	pocket := csg.Translate(csg.Box(width, depth+Overcut, height), 0, -Overcut, 0)
	relief := extrudeX([][2]float64{
		{-Overcut, height},
		{depth, height},
		{-Overcut, height + depth + Overcut},
	}, width)
	return csg.Tag(FeatureLabelRecess, csg.Union(pocket, relief))
}

// Latch describes the snap-fit pair.
type Latch struct {
	Width     float64 // X
	ArmLength float64 // Z
	ArmThick  float64 // Y
	HookDepth float64 // Y protrusion of hook and catch
	HookH     float64 // Z height of hook and catch
}

// DefaultLatch is sized for PLA at 2 mm walls.
var DefaultLatch = Latch{Width: 8, ArmLength: 10, ArmThick: 1.6, HookDepth: 1.0, HookH: 2.0}

// SnapLatchArm is a cantilever rising in Z, ending in a hook that protrudes
// in +Y with a ramped top so the mating catch slides over it.
func SnapLatchArm(l Latch) *csg.Node {
	arm := csg.Box(l.Width, l.ArmThick, l.ArmLength)
	base := l.ArmLength - l.HookH
	hook := extrudeX([][2]float64{
		{l.ArmThick, base},
		{l.ArmThick + l.HookDepth, base},
		{l.ArmThick, l.ArmLength},
	}, l.Width)
	return csg.Tag(FeatureSnapLatchArm, csg.Union(arm, hook))
}

// SnapLatchCatch is a block protruding HookDepth in +Y from a wall at y=0,
// carried on a 45 degree wedge so it prints without supports.
func SnapLatchCatch(l Latch) *csg.Node {
	d := l.HookDepth
	block := csg.Translate(csg.Box(l.Width, d, l.HookH), 0, 0, d)
	wedge := extrudeX([][2]float64{{0, 0}, {d, d}, {0, d}}, l.Width)
	return csg.Tag(FeatureSnapLatchCatch, csg.Union(block, wedge))
}

// StackTabMale is a trapezoidal dovetail, baseW wide at z=0 and topW wide
// at z=height, extruded depth along Y.
func StackTabMale(baseW, topW, height, depth float64) *csg.Node {
	return csg.Tag(FeatureStackTabMale, trapezoid(baseW, topW, height, depth))
}

// StackTabFemale is the recess for StackTabMale, enlarged by tol in base
// width, top width, height and depth.
func StackTabFemale(baseW, topW, height, depth, tol float64) *csg.Node {
	return csg.Tag(FeatureStackTabFemale, trapezoid(baseW+tol, topW+tol, height+tol, depth+tol))
}

func trapezoid(baseW, topW, height, depth float64) *csg.Node {
	w := math.Max(baseW, topW)
	bi := (w - baseW) / 2
	ti := (w - topW) / 2
	return csg.Prism([][2]float64{
		{bi, 0},
		{bi + baseW, 0},
		{ti + topW, height},
		{ti, height},
	}, depth)
}

// SlopeDrop is how far the far edge of a drainage slab sits below the near
// edge.
func SlopeDrop(length, angleDeg float64) float64 {
	return length * math.Tan(angleDeg*math.Pi/180)
}

// DrainageSlope is a slab length (X) by width (Y) whose top falls from
// height at x=0 to height-SlopeDrop at x=length. The bottom stays flat and
// the low end never gets thinner than MinSlabThickness.
func DrainageSlope(length, width, height, angleDeg float64) *csg.Node {
	far := math.Max(height-SlopeDrop(length, angleDeg), MinSlabThickness)
	return csg.Tag(FeatureDrainageSlope, csg.Prism([][2]float64{
		{0, 0},
		{length, 0},
		{length, far},
		{0, height},
	}, width))
}
