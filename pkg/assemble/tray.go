package assemble

import (
	"github.com/chazu/slidecase/pkg/csg"
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/primitive"
	"github.com/chazu/slidecase/pkg/slide"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// PocketHeadroom is the pocket depth above a flat slide.
	PocketHeadroom = 1.0
	// MaxNotchRadius caps the finger notch at each pocket end.
	MaxNotchRadius = 10.0
	// TrayLidSkirt is how far the tray lid reaches down over the tray.
	TrayLidSkirt = 3.0
)

// assembleTray lays slides flat in a rows by columns grid of pockets: slide
// length along X, columns across X and rows along Y.
func assembleTray(std slide.Standard, p params.Params) []Part {
	w := p.WallThickness
	cols := max(p.TrayColumns, 1)
	rows := max(p.TrayRows, 1)

	pocketX := std.Length + 2*p.ToleranceXY
	pocketY := std.Width + 2*p.ToleranceXY
	pocketZ := std.Thickness + PocketHeadroom

	outerX := float64(cols)*pocketX + float64(cols+1)*w
	outerY := float64(rows)*pocketY + float64(rows+1)*w
	floor := w + grooveDepth(p)
	height := floor + pocketZ

	var cuts, rails []*csg.Node
	notchR := min(MaxNotchRadius, 0.3*pocketY)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := w + float64(c)*(pocketX+w)
			y := w + float64(r)*(pocketY+w)
			cuts = append(cuts, csg.Translate(csg.Box(pocketX, pocketY, pocketZ+primitive.Overcut), x, y, floor))
			if p.FingerNotch {
				cuts = append(cuts, csg.Translate(primitive.FingerNotch(notchR, pocketZ, p.FN), x, y+pocketY/2, floor))
			}
			if p.AntiCapillary {
				rails = append(rails, csg.Translate(floorRails(pocketX, pocketY), x, y, floor))
			}
		}
	}
	if p.Stackable {
		groove := primitive.StackingGroove(outerX-2*LipInset, outerY-2*LipInset, LipHeight, LipWidth)
		cuts = append(cuts, csg.Translate(groove, LipInset, LipInset, 0))
	}
	tray := csg.Union(append([]*csg.Node{csg.Difference(csg.Box(outerX, outerY, height), cuts...)}, rails...)...)

	// The lid slips over the tray.
	inset := w + p.ToleranceXY
	lidX := outerX + 2*inset
	lidY := outerY + 2*inset
	lid := capBox(lidX, lidY, w+TrayLidSkirt, w)
	if p.Stackable {
		lip := primitive.StackingLip(outerX-2*LipInset, outerY-2*LipInset, LipHeight, LipWidth)
		lid = csg.Union(lid, csg.Translate(lip, inset+LipInset, inset+LipInset, w+TrayLidSkirt))
	}

	return []Part{
		{
			ID:         PartTray,
			Label:      "Slide Tray",
			Geometry:   tray,
			SlotLabels: slotLabels(p.NumberingStart, rows*cols),
		},
		{
			ID:        PartTrayLid,
			Label:     "Tray Lid",
			Geometry:  lid,
			Placement: v3.Vec{X: outerX + PartSpacing},
		},
	}
}
