// Package constraint checks a parameter set against the fixed
// manufacturability rule set. Rules are data: adding one never touches
// Validate.
package constraint

import (
	"fmt"
	"strings"

	"github.com/chazu/slidecase/pkg/params"
	"github.com/chazu/slidecase/pkg/slide"
)

// Severity classifies a finding.
type Severity int

const (
	// SeverityError blocks generation.
	SeverityError Severity = iota
	// SeverityWarning is reported but generation proceeds.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Thresholds used by the rule set.
const (
	MinWallThickness = 1.2
	MaxSlots         = 50
	MinToleranceXY   = 0.2
)

// Rule is a named predicate over the parameter set.
type Rule struct {
	ID       string
	Severity Severity
	Message  string
	// Violated reports whether p breaks the rule.
	Violated func(p params.Params) bool
}

// Rules returns the rule set in evaluation order.
//
// The custom slide rules are checked regardless of slide_standard, so a
// degenerate custom size is an error even when a built-in row is selected.
func Rules() []Rule {
	return []Rule{
		{
			ID:       "min_slots",
			Severity: SeverityError,
			Message:  "num_slots must be at least 1",
			Violated: func(p params.Params) bool { return p.NumSlots < 1 },
		},
		{
			ID:       "custom_thickness_positive",
			Severity: SeverityError,
			Message:  "custom_slide_thickness must be greater than 0",
			Violated: func(p params.Params) bool { return !(p.CustomSlideThickness > 0) },
		},
		{
			ID:       "custom_length_exceeds_width",
			Severity: SeverityError,
			Message:  "custom_slide_length must be greater than custom_slide_width",
			Violated: func(p params.Params) bool { return !(p.CustomSlideLength > p.CustomSlideWidth) },
		},
		{
			ID:       "min_wall_thickness",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("wall_thickness below %.1f mm may print fragile", MinWallThickness),
			Violated: func(p params.Params) bool { return p.WallThickness < MinWallThickness },
		},
		{
			ID:       "max_slots",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("more than %d slots makes a very long part", MaxSlots),
			Violated: func(p params.Params) bool { return p.NumSlots > MaxSlots },
		},
		{
			ID:       "min_tolerance_xy",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("tolerance_xy below %.1f mm may bind slides", MinToleranceXY),
			Violated: func(p params.Params) bool { return p.ToleranceXY < MinToleranceXY },
		},
		{
			ID:       "supa_mega_archival",
			Severity: SeverityWarning,
			Message:  "Supa Mega slides at archival density likely exceed a typical print bed",
			Violated: func(p params.Params) bool {
				return p.SlideStandard == slide.SupaMega && p.Density == params.DensityArchival
			},
		},
	}
}

// Finding is one violated rule.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s]: %s", f.Severity, f.RuleID, f.Message)
}

// Report lists findings in rule order.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Validate evaluates every rule against p.
func Validate(p params.Params) Report {
	return Check(p, Rules())
}

// Check evaluates rules against p independently of each other.
func Check(p params.Params, rules []Rule) Report {
	var r Report
	for _, rule := range rules {
		if rule.Violated(p) {
			r.Findings = append(r.Findings, Finding{
				RuleID:   rule.ID,
				Severity: rule.Severity,
				Message:  rule.Message,
			})
		}
	}
	return r
}

// Errors returns the error-severity findings.
func (r Report) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns the warning-severity findings.
func (r Report) Warnings() []Finding { return r.filter(SeverityWarning) }

// HasErrors reports whether generation must stop.
func (r Report) HasErrors() bool { return len(r.Errors()) > 0 }

func (r Report) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Err returns an *Error carrying every error finding, or nil.
func (r Report) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	return &Error{Findings: errs}
}

// Error is returned when a parameter set fails one or more error rules.
type Error struct {
	Findings []Finding
}

func (e *Error) Error() string {
	ids := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		ids[i] = f.RuleID
	}
	if len(e.Findings) == 1 {
		return fmt.Sprintf("constraint %s: %s", ids[0], e.Findings[0].Message)
	}
	return fmt.Sprintf("%d constraints violated: %s", len(ids), strings.Join(ids, ", "))
}

// RuleIDs lists the violated rule ids.
func (e *Error) RuleIDs() []string {
	ids := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		ids[i] = f.RuleID
	}
	return ids
}
