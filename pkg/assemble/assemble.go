// Package assemble composes primitives into the parts of each product mode.
// Every strategy is a pure function of the resolved slide, the derived
// geometry and the parameters; nothing is cached between calls.
package assemble

import (
	"fmt"
	"strconv"

	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/dims"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/primitive"
	"github.com/chazu/slidecase/pkg/slide"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Part ids.
const (
	PartBoxBase      = "box_base"
	PartBoxLid       = "box_lid"
	PartTray         = "tray"
	PartTrayLid      = "tray_lid"
	PartStainingRack = "staining_rack"
	PartDripTray     = "drip_tray"
	PartCabinetShell = "cabinet_shell"
)

// Shared dimensions in mm.
const (
	// PartSpacing separates parts laid out side by side.
	PartSpacing = 10.0

	LipHeight = 1.5
	LipWidth  = 1.6
	// LipInset keeps the lid lip and base groove clear of the outer edge.
	LipInset = 0.8

	AntiCapillaryHeight = 0.5

	MaxDrawers = 5
)

// palette is cycled to give every part of an assembly a distinct color.
var palette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Part is one printable body.
type Part struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
	// Geometry is in the part's own frame, resting on z=0.
	Geometry *csg.Node `json:"-"`
	// Placement is where the part goes in the laid-out assembly.
	Placement v3.Vec `json:"placement"`
	// SlotLabels numbers the slots or pockets the part holds, if any.
	SlotLabels []string `json:"slot_labels,omitempty"`
}

// Assemble builds the parts of mode.
func Assemble(mode params.Mode, std slide.Standard, g dims.Geometry, p params.Params) ([]Part, error) {
	var parts []Part
	switch mode {
	case params.ModeBox:
		parts = assembleBox(std, g, p)
	case params.ModeTray:
		parts = assembleTray(std, p)
	case params.ModeStainingRack:
		parts = assembleRack(std, g, p)
	case params.ModeCabinetDrawer:
		parts = assembleCabinet(std, g, p)
	default:
		return nil, fmt.Errorf("%w: %q", params.ErrUnknownMode, mode)
	}
	for i := range parts {
		parts[i].Color = palette[i%len(palette)]
	}
	return parts, nil
}

// PartCount returns how many parts Assemble produces for mode under p.
func PartCount(mode params.Mode, p params.Params) (int, error) {
	switch mode {
	case params.ModeBox, params.ModeTray, params.ModeStainingRack:
		return 2, nil
	case params.ModeCabinetDrawer:
		return 1 + drawerCount(p), nil
	default:
		return 0, fmt.Errorf("%w: %q", params.ErrUnknownMode, mode)
	}
}

func drawerCount(p params.Params) int {
	return min(max(p.DrawersPerShell, 1), MaxDrawers)
}

// slotLabels numbers n slots from start.
func slotLabels(start, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(start + i)
	}
	return out
}

// openBox is a box with an outer size of x, y, h whose interior is hollowed
// from z=floor up through the top, leaving walls of thickness w.
func openBox(x, y, h, w, floor float64) *csg.Node {
	cavity := csg.Box(x-2*w, y-2*w, h-floor+primitive.Overcut)
	return csg.Difference(csg.Box(x, y, h), csg.Translate(cavity, w, w, floor))
}

// capBox is openBox upside down: a top plate of thickness w over walls, open
// underneath.
func capBox(x, y, h, w float64) *csg.Node {
	cavity := csg.Box(x-2*w, y-2*w, h-w+primitive.Overcut)
	return csg.Difference(csg.Box(x, y, h), csg.Translate(cavity, w, w, -primitive.Overcut))
}

// ribSpec returns the rib description for slots of the given depth.
func ribSpec(g dims.Geometry, height, depth float64) primitive.Rib {
	return primitive.Rib{
		Height:        height,
		Depth:         depth,
		RootWidth:     g.RibRootWidth,
		TipWidth:      g.RibTipWidth,
		ChamferHeight: g.ChamferHeight,
		Tapered:       g.Tapered,
	}
}

// grooveDepth is how much floor a stacking groove consumes.
func grooveDepth(p params.Params) float64 {
	if !p.Stackable {
		return 0
	}
	return LipHeight + primitive.GrooveClearance
}

// floorRails lays anti-capillary rails across an x by y floor, running
// along X.
func floorRails(x, y float64) *csg.Node {
	rails := primitive.AntiCapillaryRibs(x, y, AntiCapillaryHeight)
	return csg.Translate(csg.Rotate(rails, 0, 0, -90), 0, y, 0)
}
