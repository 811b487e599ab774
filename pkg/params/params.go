// Package params defines the flat design parameter set consumed by the
// generation pipeline, its defaults, and decoders from TOML documents and
// generic key/value maps.
package params

import (
	"errors"
	"fmt"

	"github.com/chazu/slidecase/pkg/slide"
)

// ErrUnknownMode is returned when a mode name does not match any assembler.
var ErrUnknownMode = errors.New("unknown mode")

// Mode selects which product is assembled.
type Mode string

const (
	ModeBox           Mode = "box"
	ModeTray          Mode = "tray"
	ModeStainingRack  Mode = "staining_rack"
	ModeCabinetDrawer Mode = "cabinet_drawer"
)

// Modes lists every mode in a stable order.
var Modes = []Mode{ModeBox, ModeTray, ModeStainingRack, ModeCabinetDrawer}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// RibProfile selects the cross-section of the ribs between slots.
type RibProfile int

const (
	RibTapered     RibProfile = iota // funnel-shaped lead-in
	RibRectangular                   // plain wall
)

// Density selects a rib-width tier.
type Density int

const (
	DensityArchival Density = iota
	DensityWorking
	DensityStaining
	DensityMailer
)

func (d Density) String() string {
	switch d {
	case DensityArchival:
		return "archival"
	case DensityWorking:
		return "working"
	case DensityStaining:
		return "staining"
	case DensityMailer:
		return "mailer"
	default:
		return fmt.Sprintf("Density(%d)", int(d))
	}
}

// LidLatch selects how a box lid is retained.
type LidLatch int

const (
	LatchSnapFit LidLatch = iota
	LatchMagnetic
	LatchNone
)

func (l LidLatch) String() string {
	switch l {
	case LatchSnapFit:
		return "snap_fit"
	case LatchMagnetic:
		return "magnetic"
	case LatchNone:
		return "none"
	default:
		return fmt.Sprintf("LidLatch(%d)", int(l))
	}
}

// RailProfile selects the cabinet drawer guide shape.
type RailProfile int

const (
	RailTSlot RailProfile = iota
	RailL
)

// Params is the complete input of one generation request. Field tags match
// the external parameter names.
type Params struct {
	Mode Mode `json:"mode" toml:"mode" mapstructure:"mode"`
	// FN is the mesh-resolution hint; 0 leaves the kernel default.
	FN int `json:"fn" toml:"fn" mapstructure:"fn"`

	SlideStandard        slide.Index `json:"slide_standard" toml:"slide_standard" mapstructure:"slide_standard"`
	CustomSlideLength    float64     `json:"custom_slide_length" toml:"custom_slide_length" mapstructure:"custom_slide_length"`
	CustomSlideWidth     float64     `json:"custom_slide_width" toml:"custom_slide_width" mapstructure:"custom_slide_width"`
	CustomSlideThickness float64     `json:"custom_slide_thickness" toml:"custom_slide_thickness" mapstructure:"custom_slide_thickness"`

	NumSlots      int        `json:"num_slots" toml:"num_slots" mapstructure:"num_slots"`
	ToleranceXY   float64    `json:"tolerance_xy" toml:"tolerance_xy" mapstructure:"tolerance_xy"`
	ToleranceZ    float64    `json:"tolerance_z" toml:"tolerance_z" mapstructure:"tolerance_z"`
	WallThickness float64    `json:"wall_thickness" toml:"wall_thickness" mapstructure:"wall_thickness"`
	LabelArea     bool       `json:"label_area" toml:"label_area" mapstructure:"label_area"`
	RibProfile    RibProfile `json:"rib_profile" toml:"rib_profile" mapstructure:"rib_profile"`
	// RibWidth overrides the density tier when positive.
	RibWidth       float64  `json:"rib_width" toml:"rib_width" mapstructure:"rib_width"`
	Density        Density  `json:"density" toml:"density" mapstructure:"density"`
	LidLatch       LidLatch `json:"lid_latch" toml:"lid_latch" mapstructure:"lid_latch"`
	Stackable      bool     `json:"stackable" toml:"stackable" mapstructure:"stackable"`
	NumberingStart int      `json:"numbering_start" toml:"numbering_start" mapstructure:"numbering_start"`

	TrayColumns   int  `json:"tray_columns" toml:"tray_columns" mapstructure:"tray_columns"`
	TrayRows      int  `json:"tray_rows" toml:"tray_rows" mapstructure:"tray_rows"`
	FingerNotch   bool `json:"finger_notch" toml:"finger_notch" mapstructure:"finger_notch"`
	AntiCapillary bool `json:"anti_capillary" toml:"anti_capillary" mapstructure:"anti_capillary"`

	Handle        bool    `json:"handle" toml:"handle" mapstructure:"handle"`
	DrainageAngle float64 `json:"drainage_angle" toml:"drainage_angle" mapstructure:"drainage_angle"` // degrees
	OpenBottom    bool    `json:"open_bottom" toml:"open_bottom" mapstructure:"open_bottom"`

	RailProfile     RailProfile `json:"rail_profile" toml:"rail_profile" mapstructure:"rail_profile"`
	Backstop        bool        `json:"backstop" toml:"backstop" mapstructure:"backstop"`
	DrawersPerShell int         `json:"drawers_per_shell" toml:"drawers_per_shell" mapstructure:"drawers_per_shell"`
}

// Default returns the parameter set every decoder starts from.
func Default() Params {
	return Params{
		Mode: ModeBox,
		FN:   0,

		SlideStandard:        slide.ISO,
		CustomSlideLength:    76,
		CustomSlideWidth:     26,
		CustomSlideThickness: 1.0,

		NumSlots:       25,
		ToleranceXY:    0.5,
		ToleranceZ:     0.4,
		WallThickness:  2.0,
		LabelArea:      true,
		RibProfile:     RibTapered,
		RibWidth:       0,
		Density:        DensityWorking,
		LidLatch:       LatchSnapFit,
		Stackable:      true,
		NumberingStart: 1,

		TrayColumns:   2,
		TrayRows:      5,
		FingerNotch:   true,
		AntiCapillary: true,

		Handle:        true,
		DrainageAngle: 5,
		OpenBottom:    false,

		RailProfile:     RailTSlot,
		Backstop:        true,
		DrawersPerShell: 3,
	}
}

// Slide resolves the effective slide size for p.
func (p Params) Slide() slide.Standard {
	return slide.Resolve(p.SlideStandard, p.CustomSlideLength, p.CustomSlideWidth, p.CustomSlideThickness)
}
