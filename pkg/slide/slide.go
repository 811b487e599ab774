// Package slide holds the built-in microscope slide standards and resolves a
// standard selection plus custom overrides into one effective slide size.
package slide

import "fmt"

// Index selects a row of the standards table. Values outside the built-in
// range select the custom slide.
type Index int

const (
	ISO          Index = iota // ISO 8037, 76 x 26 mm
	US                        // 3 x 1 inch
	Petrographic              // thin-section slides
	SupaMega                  // 75 x 50 mm
	Custom                    // user-supplied dimensions
)

func (i Index) String() string {
	switch i {
	case ISO:
		return "iso"
	case US:
		return "us"
	case Petrographic:
		return "petrographic"
	case SupaMega:
		return "supa_mega"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("Index(%d)", int(i))
	}
}

// Builtin reports whether i selects a row of the fixed table.
func (i Index) Builtin() bool {
	return i >= ISO && i < Custom
}

// Standard is the physical size of a slide in mm.
type Standard struct {
	Length    float64 `json:"length_mm" toml:"length_mm"`
	Width     float64 `json:"width_mm" toml:"width_mm"`
	Thickness float64 `json:"thickness_mm" toml:"thickness_mm"`
}

// standards is indexed by Index. Every row has Length > Width.
var standards = [...]Standard{
	ISO:          {Length: 76, Width: 26, Thickness: 1.0},
	US:           {Length: 75, Width: 25, Thickness: 1.0},
	Petrographic: {Length: 46, Width: 27, Thickness: 1.2},
	SupaMega:     {Length: 75, Width: 50, Thickness: 1.2},
}

// Standards returns a copy of the built-in table in index order.
func Standards() []Standard {
	out := make([]Standard, len(standards))
	copy(out, standards[:])
	return out
}

// Lookup returns the built-in row for i.
func Lookup(i Index) (Standard, bool) {
	if !i.Builtin() {
		return Standard{}, false
	}
	return standards[i], true
}

// Resolve returns the table row for a built-in index, ignoring the custom
// values entirely, or a Standard built from the custom values otherwise.
// It never fails: whether custom values make sense is checked by the
// constraint rules against the raw parameters.
func Resolve(i Index, length, width, thickness float64) Standard {
	if std, ok := Lookup(i); ok {
		return std
	}
	return Standard{Length: length, Width: width, Thickness: thickness}
}
