// Package estimate predicts how long a design takes to render.
package estimate

import (
	"time"

	"github.com/chazu/slidecase/pkg/assemble"
	"github.com/chazu/slidecase/pkg/params"
)

// Cost coefficients in seconds.
const (
	BaseSeconds    = 2.0
	PerSlotSeconds = 0.15
	PerPartSeconds = 1.5
	// FNSeconds is added when an explicit mesh resolution is requested.
	FNSeconds = 4.0
	// ConstrainedFactor scales the estimate on slow sandboxed runners.
	ConstrainedFactor = 3.0
)

// WarnAfter is the estimate above which callers should warn.
const WarnAfter = 60 * time.Second

// Input carries the numbers the formula needs.
type Input struct {
	NumSlots    int
	PartCount   int
	FN          int
	Constrained bool
}

// Result is a render time estimate.
type Result struct {
	Duration time.Duration
	Warn     bool
}

// Estimate applies the cost formula.
func Estimate(in Input) Result {
	s := BaseSeconds + PerSlotSeconds*float64(in.NumSlots) + PerPartSeconds*float64(in.PartCount)
	if in.FN > 0 {
		s += FNSeconds
	}
	if in.Constrained {
		s *= ConstrainedFactor
	}
	d := time.Duration(s * float64(time.Second))
	return Result{Duration: d, Warn: d > WarnAfter}
}

// ForParams fills Input from a parameter set.
func ForParams(p params.Params, constrained bool) (Result, error) {
	n, err := assemble.PartCount(p.Mode, p)
	if err != nil {
		return Result{}, err
	}
	return Estimate(Input{
		NumSlots:    p.NumSlots,
		PartCount:   n,
		FN:          p.FN,
		Constrained: constrained,
	}), nil
}
