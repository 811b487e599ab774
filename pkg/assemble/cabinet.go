package assemble

import (
	"fmt"

	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/dims"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/primitive"
	"github.com/chazu/slidecase/pkg/slide"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	RailWidth  = 3.0
	RailHeight = 5.0

	BackstopWidth  = 6.0
	BackstopHeight = 3.0

	PullRadius = 10.0

	TabBase   = 8.0
	TabTop    = 12.0
	TabHeight = 3.0
)

// Feature tags specific to the cabinet.
const (
	FeatureBackstopTab = "backstop_tab"
	FeatureDrawerStop  = "drawer_stop"
)

func railKind(p params.Params) primitive.RailKind {
	if p.RailProfile == params.RailL {
		return primitive.RailL
	}
	return primitive.RailTSlot
}

// cabinetLayout holds dimensions shared by the shell and its drawers.
// Drawers slide along Y with their front at y=0.
//
// With a backstop the drawer carries a tab under its back edge and the shell
// a stop on each bay floor at the front. The rail channels give the drawer
// lift of vertical play so it can be raised over the stop when it goes in or
// comes out; resting, the tab catches on the stop.
type cabinetLayout struct {
	w                float64
	tol              float64
	drawers          int
	interiorX        float64
	interiorY        float64
	drawerX, drawerY float64
	drawerH          float64
	// body is the height of the drawer box above the bottom of its frame,
	// which is the underside of the backstop tab when there is one.
	body  float64
	railZ float64
	// seat is the gap between a resting drawer frame and its bay floor.
	seat float64
	lift float64

	sideWall       float64
	bayX, bayY     float64
	bayH           float64
	bottom         float64
	shellX, shellY float64
	shellH         float64
	ribHeight      float64
}

func layoutCabinet(std slide.Standard, g dims.Geometry, p params.Params) cabinetLayout {
	w := p.WallThickness
	tol := p.ToleranceXY
	l := cabinetLayout{w: w, tol: tol, drawers: drawerCount(p)}

	l.interiorX = primitive.SlotArrayLength(p.NumSlots, g.Pitch, g.RibWidth)
	l.interiorY = std.Length + 2*tol
	l.drawerX = l.interiorX + 2*w
	l.drawerY = l.interiorY + 2*w
	l.drawerH = w + std.Width + tol
	l.ribHeight = dims.RibHeight(std)
	if p.Backstop {
		l.body = BackstopHeight
		l.seat = tol
		l.lift = BackstopHeight + tol
	}
	l.railZ = l.body + (l.drawerH-RailHeight)/2

	l.sideWall = w + RailWidth + tol
	l.bayX = l.drawerX + 2*tol
	l.bayY = l.drawerY + tol
	l.bayH = l.seat + l.body + l.drawerH + l.lift + 2*tol
	l.bottom = w
	if p.Stackable {
		l.bottom += TabHeight + tol
	}
	l.shellX = l.bayX + 2*l.sideWall
	l.shellY = l.bayY + w
	l.shellH = l.bottom + float64(l.drawers)*l.bayH + float64(l.drawers)*w
	return l
}

// bayZ is the floor height of bay i, counted from the bottom.
func (l cabinetLayout) bayZ(i int) float64 {
	return l.bottom + float64(i)*(l.bayH+l.w)
}

// drawerAt is where the frame of the drawer in bay i rests.
func (l cabinetLayout) drawerAt(i int) v3.Vec {
	return v3.Vec{X: l.sideWall + l.tol, Z: l.bayZ(i) + l.seat}
}

func assembleCabinet(std slide.Standard, g dims.Geometry, p params.Params) []Part {
	l := layoutCabinet(std, g, p)
	drawer := cabinetDrawer(l, g, p)

	parts := []Part{{
		ID:       PartCabinetShell,
		Label:    "Cabinet Shell",
		Geometry: cabinetShell(l, p),
	}}
	for i := 0; i < l.drawers; i++ {
		parts = append(parts, Part{
			ID:         fmt.Sprintf("cabinet_drawer_%d", i+1),
			Label:      fmt.Sprintf("Drawer %d", i+1),
			Geometry:   drawer,
			Placement:  l.drawerAt(i),
			SlotLabels: slotLabels(p.NumberingStart+i*p.NumSlots, p.NumSlots),
		})
	}
	return parts
}

func cabinetDrawer(l cabinetLayout, g dims.Geometry, p params.Params) *csg.Node {
	w := l.w
	kind := railKind(p)
	rail := primitive.Rail(kind, l.drawerY, RailWidth, RailHeight)

	adds := []*csg.Node{
		csg.Translate(openBox(l.drawerX, l.drawerY, l.drawerH, w, w), 0, 0, l.body),
		csg.Translate(primitive.SlotArray(p.NumSlots, g.Pitch, ribSpec(g, l.ribHeight, l.interiorY)), w, w, l.body+w),
		csg.Translate(rail, l.drawerX, 0, l.railZ),
		csg.Translate(csg.Rotate(rail, 0, 0, 180), 0, l.drawerY, l.railZ),
	}
	if p.AntiCapillary {
		adds = append(adds, csg.Translate(floorRails(l.interiorX, l.interiorY), w, w, l.body+w))
	}
	if p.Backstop {
		tab := csg.Tag(FeatureBackstopTab, csg.Box(BackstopWidth, w, BackstopHeight))
		adds = append(adds, csg.Translate(tab, (l.drawerX-BackstopWidth)/2, l.drawerY-w, 0))
	}

	// Pull: a half-round scoop out of the top of the front wall.
	r := min(PullRadius, l.drawerH/2)
	pull := csg.Rotate(primitive.FingerNotch(r, w, p.FN), -90, 0, 0)
	pull = csg.Translate(pull, l.drawerX/2, -primitive.Overcut/2, l.body+l.drawerH)

	return csg.Difference(csg.Union(adds...), pull)
}

func cabinetShell(l cabinetLayout, p params.Params) *csg.Node {
	kind := railKind(p)
	var cuts []*csg.Node
	var adds []*csg.Node

	for i := 0; i < l.drawers; i++ {
		z := l.bayZ(i)
		bay := csg.Box(l.bayX, l.bayY+primitive.Overcut, l.bayH)
		cuts = append(cuts, csg.Translate(bay, l.sideWall, -primitive.Overcut, z))

		// Channels share the origin of the rail they guide.
		channel := primitive.RailChannel(kind, l.bayY, RailWidth, RailHeight, l.tol, l.lift)
		at := l.drawerAt(i)
		railZ := at.Z + l.railZ
		cuts = append(cuts,
			csg.Translate(channel, at.X+l.drawerX, 0, railZ),
			csg.Translate(csg.Rotate(channel, 0, 0, 180), at.X, l.bayY, railZ),
		)

		if p.Backstop {
			stop := csg.Tag(FeatureDrawerStop, csg.Box(BackstopWidth+2, l.w, BackstopHeight))
			adds = append(adds, csg.Translate(stop, (l.shellX-BackstopWidth-2)/2, 0, z))
		}
	}

	if p.Stackable {
		depth := 0.6 * l.shellY
		y := (l.shellY - depth) / 2
		male := primitive.StackTabMale(TabBase, TabTop, TabHeight, depth)
		female := primitive.StackTabFemale(TabBase, TabTop, TabHeight, depth, l.tol)
		for _, fx := range []float64{0.25, 0.75} {
			x := fx*l.shellX - TabTop/2
			adds = append(adds, csg.Translate(male, x, y, l.shellH))
			cuts = append(cuts, csg.Translate(female, x-l.tol/2, y-l.tol/2, 0))
		}
	}

	shell := csg.Difference(csg.Box(l.shellX, l.shellY, l.shellH), cuts...)
	return csg.Union(append([]*csg.Node{shell}, adds...)...)
}
