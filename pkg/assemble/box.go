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
	// LidClearance is the headroom above a standing slide.
	LidClearance = 1.0
	// BaseShare is the fraction of the interior height taken by the base.
	BaseShare = 0.6

	LabelHeight   = 12.0
	LabelMaxWidth = 50.0

	MagnetDiameter  = 6.0
	MagnetThickness = 2.0

	// latchAttach is how far the snap arm reaches down the base wall.
	latchAttach = 4.0
)

// boxLayout holds the dimensions shared by the base and the lid.
type boxLayout struct {
	w                     float64
	interiorX, interiorY  float64
	outerX, outerY        float64
	floor                 float64
	baseH, lidH           float64
	baseCavity, lidCavity float64
	ribHeight             float64
}

// layoutBox stores slides standing on their long edge: thickness across X,
// length along Y, width up Z.
func layoutBox(std slide.Standard, g dims.Geometry, p params.Params) boxLayout {
	w := p.WallThickness
	l := boxLayout{w: w}
	l.interiorX = primitive.SlotArrayLength(p.NumSlots, g.Pitch, g.RibWidth)
	l.interiorY = std.Length + 2*p.ToleranceXY
	l.outerX = l.interiorX + 2*w
	l.outerY = l.interiorY + 2*w
	l.floor = w + grooveDepth(p)

	interiorZ := std.Width + p.ToleranceXY + LidClearance
	l.baseCavity = BaseShare * interiorZ
	l.lidCavity = interiorZ - l.baseCavity
	l.baseH = l.floor + l.baseCavity
	l.lidH = w + l.lidCavity
	l.ribHeight = dims.RibHeight(std)
	return l
}

func assembleBox(std slide.Standard, g dims.Geometry, p params.Params) []Part {
	l := layoutBox(std, g, p)
	return []Part{
		{
			ID:         PartBoxBase,
			Label:      "Box Base",
			Geometry:   boxBase(l, g, p),
			SlotLabels: slotLabels(p.NumberingStart, p.NumSlots),
		},
		{
			ID:        PartBoxLid,
			Label:     "Box Lid",
			Geometry:  boxLid(l, p),
			Placement: v3.Vec{X: l.outerX + PartSpacing},
		},
	}
}

func boxBase(l boxLayout, g dims.Geometry, p params.Params) *csg.Node {
	w := l.w
	adds := []*csg.Node{
		openBox(l.outerX, l.outerY, l.baseH, w, l.floor),
		csg.Translate(primitive.SlotArray(p.NumSlots, g.Pitch, ribSpec(g, l.ribHeight, l.interiorY)), w, w, l.floor),
	}
	if p.AntiCapillary {
		adds = append(adds, csg.Translate(floorRails(l.interiorX, l.interiorY), w, w, l.floor))
	}

	var cuts []*csg.Node
	switch p.LidLatch {
	case params.LatchSnapFit:
		adds = append(adds, snapArm(l))
	case params.LatchMagnetic:
		ears, pockets := magnetEars(l, l.baseH, true)
		adds = append(adds, ears)
		cuts = append(cuts, pockets...)
	}

	if p.LabelArea {
		if h := labelHeight(l, p); h > 0 {
			lw := min(LabelMaxWidth, l.outerX-2*w-2)
			if lw > 0 {
				recess := primitive.LabelRecess(lw, h, labelDepth(l))
				cuts = append(cuts, csg.Translate(recess, (l.outerX-lw)/2, 0, l.floor+labelGap))
			}
		}
	}
	if p.Stackable {
		groove := primitive.StackingGroove(l.outerX-2*LipInset, l.outerY-2*LipInset, LipHeight, LipWidth)
		cuts = append(cuts, csg.Translate(groove, LipInset, LipInset, 0))
	}
	return csg.Difference(csg.Union(adds...), cuts...)
}

func boxLid(l boxLayout, p params.Params) *csg.Node {
	adds := []*csg.Node{capBox(l.outerX, l.outerY, l.lidH, l.w)}
	var cuts []*csg.Node

	if p.Stackable {
		lip := primitive.StackingLip(l.outerX-2*LipInset, l.outerY-2*LipInset, LipHeight, LipWidth)
		adds = append(adds, csg.Translate(lip, LipInset, LipInset, l.lidH))
	}
	switch p.LidLatch {
	case params.LatchSnapFit:
		adds = append(adds, snapCatch(l))
	case params.LatchMagnetic:
		ears, pockets := magnetEars(l, l.lidH, false)
		adds = append(adds, ears)
		cuts = append(cuts, pockets...)
	}
	return csg.Difference(csg.Union(adds...), cuts...)
}

// labelGap is the margin kept below the label recess and above its relief.
const labelGap = 1.0

func labelDepth(l boxLayout) float64 { return l.w / 2 }

// labelHeight fits the recess on the front face below the rim, and below
// the snap arm standoff when there is one, counting the relief chamfer
// above the pocket.
func labelHeight(l boxLayout, p params.Params) float64 {
	top := l.baseH - labelGap
	if p.LidLatch == params.LatchSnapFit {
		top = l.baseH - latchAttach - labelGap
	}
	relief := labelDepth(l) + primitive.Overcut
	return min(LabelHeight, top-relief-l.floor-labelGap)
}

// snapArm hangs the latch arm off the front face of the base so its hook
// rises above the rim and faces the lid wall.
func snapArm(l boxLayout) *csg.Node {
	lt := primitive.DefaultLatch
	arm := primitive.SnapLatchArm(lt)
	standoff := csg.Box(lt.Width, lt.HookDepth, latchAttach)
	x := (l.outerX - lt.Width) / 2
	z := l.baseH - latchAttach
	return csg.Union(
		csg.Translate(arm, x, -lt.HookDepth-lt.ArmThick, z),
		csg.Translate(standoff, x, -lt.HookDepth, z),
	)
}

// snapCatch sits on the lid front face directly under the hook of snapArm
// when the lid is closed.
func snapCatch(l boxLayout) *csg.Node {
	lt := primitive.DefaultLatch
	hookUnderside := lt.ArmLength - lt.HookH - latchAttach
	catch := csg.Rotate(primitive.SnapLatchCatch(lt), 0, 0, 180)
	x := (l.outerX-lt.Width)/2 + lt.Width
	return csg.Translate(catch, x, 0, hookUnderside-lt.HookH-lt.HookDepth)
}

// magnetEars adds a boss outside each X end wall, flush with the mating
// face at z=top (base) or z=0 (lid), and returns the pockets to cut.
func magnetEars(l boxLayout, h float64, base bool) (*csg.Node, []*csg.Node) {
	size := MagnetDiameter + 2*l.w
	earH := min(h, MagnetThickness+2*l.w)
	y := (l.outerY - size) / 2

	earZ, pocketZ := 0.0, 0.0
	if base {
		earZ = h - earH
		pocketZ = h - MagnetThickness
	} else {
		pocketZ = -primitive.Overcut
	}

	ear := csg.Box(size, size, earH)
	pocket := primitive.MagnetPocket(MagnetDiameter, MagnetThickness)
	ears := csg.Union(
		csg.Translate(ear, -size, y, earZ),
		csg.Translate(ear, l.outerX, y, earZ),
	)
	pockets := []*csg.Node{
		csg.Translate(pocket, -size/2, l.outerY/2, pocketZ),
		csg.Translate(pocket, l.outerX+size/2, l.outerY/2, pocketZ),
	}
	return ears, pockets
}
