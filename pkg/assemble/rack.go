package assemble

import (
	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/dims"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/primitive"
	"github.com/chazu/slidecase/pkg/slide"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	HandleHeight  = 25.0
	DripTrayDepth = 8.0
	// CrossbarEvery is the crossbar spacing of an open bottom, in slots.
	CrossbarEvery = 4

	// HandleClearance is the headroom between a lifted slide and the bar.
	HandleClearance = 3.0

	// WeepWidth and WeepHeight size the channels that carry runoff under
	// the ribs to the drain.
	WeepWidth  = 3.0
	WeepHeight = 1.5
)

// Feature tags specific to the rack.
const (
	FeatureDrainSlot   = "drain_slot"
	FeatureWeepChannel = "weep_channel"
)

// weepAt places the weep channels across the interior width.
var weepAt = []float64{0.25, 0.75}

// assembleRack stands slides on edge along a floor that falls along X at
// the drainage angle. Ribs are lengthened downward by the local drop so
// their tops stay level.
func assembleRack(std slide.Standard, g dims.Geometry, p params.Params) []Part {
	w := p.WallThickness
	interiorX := primitive.SlotArrayLength(p.NumSlots, g.Pitch, g.RibWidth)
	interiorY := std.Length + 2*p.ToleranceXY
	outerX := interiorX + 2*w
	outerY := interiorY + 2*w
	ribH := dims.RibHeight(std)

	var floor *csg.Node
	var drop float64
	if p.OpenBottom {
		floor = primitive.CrossbarLattice(outerX, outerY, 1.5*w, w, float64(CrossbarEvery)*g.Pitch)
	} else {
		drop = primitive.SlopeDrop(outerX, p.DrainageAngle)
		floor = primitive.DrainageSlope(outerX, outerY, w+drop, p.DrainageAngle)
	}
	// Ribs start on the lowest point of the floor.
	ribBase := w
	rimH := ribBase + drop + ribH

	ribs := primitive.SlotArray(p.NumSlots, g.Pitch, ribSpec(g, ribH+drop, interiorY))
	walls := csg.Difference(
		csg.Box(outerX, outerY, rimH),
		csg.Translate(csg.Box(interiorX, interiorY, rimH+2*primitive.Overcut), w, w, -primitive.Overcut),
	)
	adds := []*csg.Node{floor, walls, csg.Translate(ribs, w, w, ribBase)}
	if p.Handle {
		// Posts stand on the end walls; the bar clears a slide lifted out
		// of its slot.
		depth := 2 * w
		height := max(HandleHeight, std.Width+HandleClearance)
		handle := primitive.CarryHandle(outerX, height, w, depth)
		adds = append(adds, csg.Translate(handle, 0, (outerY-depth)/2, rimH))
	}
	rack := csg.Union(adds...)
	if !p.OpenBottom {
		rack = csg.Difference(rack, rackDrains(outerX, interiorY, w, drop)...)
	}

	inset := w + p.ToleranceXY
	drip := openBox(outerX+2*inset, outerY+2*inset, DripTrayDepth, w, w)

	return []Part{
		{
			ID:         PartStainingRack,
			Label:      "Staining Rack",
			Geometry:   rack,
			SlotLabels: slotLabels(p.NumberingStart, p.NumSlots),
		},
		{
			ID:        PartDripTray,
			Label:     "Drip Tray",
			Geometry:  drip,
			Placement: v3.Vec{X: outerX + 2*inset + PartSpacing},
		},
	}
}

// rackDrains cuts a slot through the low end wall at floor level and weep
// channels that follow the slope under the ribs down to it.
func rackDrains(outerX, interiorY, w, drop float64) []*csg.Node {
	oc := primitive.Overcut
	cuts := []*csg.Node{
		csg.Tag(FeatureDrainSlot, csg.Translate(csg.Box(w+2*oc, interiorY, w), outerX-w-oc, w, w)),
	}
	// The floor top falls from w+drop at x=0 to w at x=outerX.
	top := func(x float64) float64 { return w + drop*(1-x/outerX) }
	x0, x1 := w-oc, outerX+oc
	weep := csg.Prism([][2]float64{
		{x0, top(x0) - oc},
		{x1, top(x1) - oc},
		{x1, top(x1) + WeepHeight},
		{x0, top(x0) + WeepHeight},
	}, WeepWidth)
	for _, f := range weepAt {
		y := w + f*interiorY - WeepWidth/2
		cuts = append(cuts, csg.Tag(FeatureWeepChannel, csg.Translate(weep, 0, y, 0)))
	}
	return cuts
}
