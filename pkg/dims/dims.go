// Package dims derives slot and rib dimensions from a resolved slide size,
// tolerances and the density and profile selectors.
package dims

import (
	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/slide"
)

const (
	// WavinessAllowance is added to every slot for slide flatness error.
	WavinessAllowance = 0.1

	// ReferenceSlotWidth is the slot width the published per-density
	// spacings are quoted against.
	ReferenceSlotWidth = 2.0

	// DefaultChamferHeight is the lead-in height of a tapered rib.
	DefaultChamferHeight = 2.0
)

// ribWidths is indexed by params.Density.
var ribWidths = [...]float64{
	params.DensityArchival: 0.6,
	params.DensityWorking:  1.5,
	params.DensityStaining: 3.0,
	params.DensityMailer:   4.0,
}

// Geometry is the derived slot and rib geometry of one request.
type Geometry struct {
	SlotWidth     float64 `json:"slot_width"`
	Pitch         float64 `json:"pitch"`
	RibWidth      float64 `json:"rib_width"`
	RibRootWidth  float64 `json:"rib_root_width"`
	RibTipWidth   float64 `json:"rib_tip_width"`
	ChamferHeight float64 `json:"chamfer_height"`
	Tapered       bool    `json:"tapered"`
}

// SlotWidth is the opening a slide of the given thickness sits in.
func SlotWidth(thickness, tolZ float64) float64 {
	return thickness + tolZ + WavinessAllowance
}

// Pitch is the center-to-center slot spacing.
func Pitch(slotWidth, ribWidth float64) float64 {
	return slotWidth + ribWidth
}

// RibWidthForDensity returns the base rib width of a density tier.
// Out-of-range tiers clamp to the nearest one.
func RibWidthForDensity(d params.Density) float64 {
	return ribWidths[clampDensity(d)]
}

// NominalPitch is the spacing quoted for a tier: a ReferenceSlotWidth slot
// plus the tier's rib.
func NominalPitch(d params.Density) float64 {
	return Pitch(ReferenceSlotWidth, RibWidthForDensity(d))
}

func clampDensity(d params.Density) params.Density {
	if d < params.DensityArchival {
		return params.DensityArchival
	}
	if int(d) >= len(ribWidths) {
		return params.Density(len(ribWidths) - 1)
	}
	return d
}

// Derive computes the slot and rib geometry for std under p. A positive
// p.RibWidth overrides the density tier.
func Derive(std slide.Standard, p params.Params) Geometry {
	rib := p.RibWidth
	if rib <= 0 {
		rib = RibWidthForDensity(p.Density)
	}
	sw := SlotWidth(std.Thickness, p.ToleranceZ)

	g := Geometry{
		SlotWidth:    sw,
		Pitch:        Pitch(sw, rib),
		RibWidth:     rib,
		RibRootWidth: rib,
		RibTipWidth:  rib,
	}
	if p.RibProfile == params.RibTapered {
		g.Tapered = true
		g.RibTipWidth = rib / 2
		g.ChamferHeight = DefaultChamferHeight
	}
	return g
}

// RibHeight is how tall the slot ribs stand for a slide stored on edge:
// half the slide width, so the upper half stays free to grip.
func RibHeight(std slide.Standard) float64 {
	return std.Width / 2
}
